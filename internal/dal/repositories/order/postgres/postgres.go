package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/iorderrepo"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/address"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/order"
)

const pgUniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var orderColumns = []string{
	"id",
	"order_number",
	"square_order_id",
	"square_payment_id",
	"items",
	"shipping_address",
	"subtotal_cents",
	"shipping_cents",
	"tax_cents",
	"total_cents",
	"status",
	"tracking_number",
	"tracking_carrier",
	"estimated_delivery",
	"created_at",
	"updated_at",
	"paid_at",
	"shipped_at",
	"delivered_at",
}

// Repository is the postgres-backed order store. Items and the shipping
// address are stored as jsonb alongside the indexed columns; the unique
// constraint on order_number is the secondary key.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, o *order.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	addr, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	query, args, err := psql.Insert("orders").
		Columns(orderColumns...).
		Values(
			o.ID,
			order.NormalizeNumber(o.Number),
			o.SquareOrderID,
			o.SquarePaymentID,
			items,
			addr,
			o.SubtotalCents,
			o.ShippingCents,
			o.TaxCents,
			o.TotalCents,
			o.Status.String(),
			o.TrackingNumber,
			o.TrackingCarrier,
			o.EstimatedDelivery,
			o.CreatedAt,
			o.UpdatedAt,
			o.PaidAt,
			o.ShippedAt,
			o.DeliveredAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return iorderrepo.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	return r.getBy(ctx, sq.Eq{"id": id})
}

func (r *Repository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	return r.getBy(ctx, sq.Eq{"order_number": order.NormalizeNumber(number)})
}

// Update runs as a read-modify-write inside one transaction with the row
// locked, so concurrent patches serialize instead of clobbering each other.
func (r *Repository) Update(ctx context.Context, id string, patch order.Patch) (*order.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query, args, err := selectOrders().
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	current, err := scanOrder(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	current.Apply(patch)
	current.UpdatedAt = time.Now()

	items, err := json.Marshal(current.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order items: %w", err)
	}

	query, args, err = psql.Update("orders").
		Set("square_order_id", current.SquareOrderID).
		Set("square_payment_id", current.SquarePaymentID).
		Set("items", items).
		Set("status", current.Status.String()).
		Set("tracking_number", current.TrackingNumber).
		Set("tracking_carrier", current.TrackingCarrier).
		Set("estimated_delivery", current.EstimatedDelivery).
		Set("updated_at", current.UpdatedAt).
		Set("paid_at", current.PaidAt).
		Set("shipped_at", current.ShippedAt).
		Set("delivered_at", current.DeliveredAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return current, nil
}

// RecordShipment is a single UPDATE so tracking fields, the status change and
// the one-shot shipped_at stamp land atomically.
func (r *Repository) RecordShipment(ctx context.Context, number, trackingNumber, carrier, estimatedDelivery string) (*order.Order, error) {
	query, args, err := psql.Update("orders").
		Set("tracking_number", trackingNumber).
		Set("tracking_carrier", carrier).
		Set("estimated_delivery", estimatedDelivery).
		Set("status", order.StatusShipped.String()).
		Set("shipped_at", sq.Expr("COALESCE(shipped_at, now())")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"order_number": order.NormalizeNumber(number)}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build shipment query: %w", err)
	}

	return scanOrder(r.pool.QueryRow(ctx, query, args...))
}

func (r *Repository) getBy(ctx context.Context, where sq.Eq) (*order.Order, error) {
	query, args, err := selectOrders().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return scanOrder(r.pool.QueryRow(ctx, query, args...))
}

func selectOrders() sq.SelectBuilder {
	return psql.Select(orderColumns...).From("orders")
}

func columnList() string {
	list := orderColumns[0]
	for _, c := range orderColumns[1:] {
		list += ", " + c
	}
	return list
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var (
		o         order.Order
		items     []byte
		addr      []byte
		rawStatus string
	)

	err := row.Scan(
		&o.ID,
		&o.Number,
		&o.SquareOrderID,
		&o.SquarePaymentID,
		&items,
		&addr,
		&o.SubtotalCents,
		&o.ShippingCents,
		&o.TaxCents,
		&o.TotalCents,
		&rawStatus,
		&o.TrackingNumber,
		&o.TrackingCarrier,
		&o.EstimatedDelivery,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.PaidAt,
		&o.ShippedAt,
		&o.DeliveredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, iorderrepo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}
	var shippingAddress address.Address
	if err := json.Unmarshal(addr, &shippingAddress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipping address: %w", err)
	}
	o.ShippingAddress = shippingAddress

	status, err := order.ParseStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order status %q: %w", rawStatus, err)
	}
	o.Status = status

	return &o, nil
}

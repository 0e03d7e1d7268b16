package checkoutsvc

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/iorderrepo"
	"github.com/jasonsal23/offroad-paracord/internal/dal/square"
	"github.com/jasonsal23/offroad-paracord/internal/events"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/address"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/money"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/order"
)

// Item is one cart-derived checkout line. Prices arrive in dollars at this
// boundary and are converted to cents before anything touches them.
type Item struct {
	ProductID      string  `json:"productId"`
	ProductName    string  `json:"productName"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unitPrice"`
	PrimaryColor   string  `json:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor"`
	CustomNote     *string `json:"customNote,omitempty"`
}

// Request is a single checkout attempt. IdempotencyKey is optional: a client
// retrying the same logical attempt supplies the same key so the payment
// provider can deduplicate; when absent a fresh key is generated.
type Request struct {
	SourceID        string          `json:"sourceId"`
	Items           []Item          `json:"items"`
	ShippingAddress address.Address `json:"shippingAddress"`
	Subtotal        float64         `json:"subtotal"`
	ShippingCost    float64         `json:"shippingCost"`
	Tax             float64         `json:"tax"`
	TotalAmount     float64         `json:"totalAmount"`

	IdempotencyKey string `json:"-"`
}

// Result is what a successful checkout returns to the caller.
type Result struct {
	OrderID       string `json:"orderId"`
	OrderNumber   string `json:"orderNumber"`
	PaymentID     string `json:"paymentId"`
	PaymentStatus string `json:"status"`
	ReceiptURL    string `json:"receiptUrl,omitempty"`
}

// processor is the external payment collaborator. *square.Client satisfies
// it; tests inject fakes.
type processor interface {
	Ready() error
	CreateOrder(ctx context.Context, p square.CreateOrderParams) (string, error)
	CreatePayment(ctx context.Context, p square.CreatePaymentParams) (*square.Payment, error)
}

// CheckoutService turns a validated cart and address into a persisted order
// after the payment provider accepted both the order and the charge.
type CheckoutService struct {
	orders    iorderrepo.IOrderRepository
	processor processor
	publisher events.Publisher
}

// option is a function that configures the CheckoutService.
type option func(*CheckoutService)

// MustNewCheckoutService creates a new CheckoutService.
func MustNewCheckoutService(opts ...option) *CheckoutService {
	s := &CheckoutService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.orders == nil || s.processor == nil {
		panic("checkoutsvc: order repository and payment processor are required")
	}

	return s
}

// WithOrderRepository sets the order store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *CheckoutService) {
		s.orders = repo
	}
}

// WithProcessor sets the payment provider client.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProcessor(p processor) option {
	return func(s *CheckoutService) {
		s.processor = p
	}
}

// WithPublisher sets the optional order event publisher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPublisher(p events.Publisher) option {
	return func(s *CheckoutService) {
		s.publisher = p
	}
}

// Checkout validates the request, creates the remote order, charges the card
// and only then persists the local order. A failure anywhere leaves no local
// record; a charge failure after the remote order was created is reported as
// such and the remote order is intentionally left in place.
func (s *CheckoutService) Checkout(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if err := s.processor.Ready(); err != nil {
		switch {
		case errors.Is(err, square.ErrNoAccessToken):
			return nil, newError(KindConfig, "Payment system not configured", err)
		case errors.Is(err, square.ErrNoLocation):
			return nil, newError(KindConfig, "Store location not configured", err)
		default:
			return nil, newError(KindConfig, "Payment system not configured", err)
		}
	}

	idempotencyKey := req.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}
	orderNumber := order.NewNumber()

	squareItems := make([]square.LineItem, len(req.Items))
	for i, it := range req.Items {
		squareItems[i] = square.LineItem{
			Name:           it.ProductName,
			Quantity:       it.Quantity,
			UnitPriceCents: money.CentsFromDollars(it.UnitPrice),
			Note:           itemNote(it),
		}
	}

	squareOrderID, err := s.processor.CreateOrder(ctx, square.CreateOrderParams{
		IdempotencyKey: "order-" + idempotencyKey,
		ReferenceID:    orderNumber,
		Items:          squareItems,
		Recipient:      req.ShippingAddress,
	})
	if err != nil {
		return nil, s.classify(ctx, "create order", err)
	}

	payment, err := s.processor.CreatePayment(ctx, square.CreatePaymentParams{
		IdempotencyKey: "payment-" + idempotencyKey,
		SourceID:       req.SourceID,
		OrderID:        squareOrderID,
		AmountCents:    money.CentsFromDollars(req.TotalAmount),
		BuyerEmail:     req.ShippingAddress.Email,
		Address:        req.ShippingAddress,
		Note:           "Order " + orderNumber,
	})
	if err != nil {
		return nil, s.classify(ctx, "create payment", err)
	}

	now := time.Now()
	o := &order.Order{
		ID:              uuid.NewString(),
		Number:          orderNumber,
		SquareOrderID:   squareOrderID,
		SquarePaymentID: payment.ID,
		Items:           snapshotItems(req.Items),
		ShippingAddress: req.ShippingAddress,
		SubtotalCents:   money.CentsFromDollars(req.Subtotal),
		ShippingCents:   money.CentsFromDollars(req.ShippingCost),
		TaxCents:        money.CentsFromDollars(req.Tax),
		TotalCents:      money.CentsFromDollars(req.TotalAmount),
		Status:          order.StatusConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
		PaidAt:          &now,
	}

	if err := s.orders.Insert(ctx, o); err != nil {
		slog.ErrorContext(ctx, "failed to persist order after successful payment",
			"order_number", orderNumber, "payment_id", payment.ID, "error", err)

		return nil, newError(KindInternal, "An unexpected error occurred. Please try again.", err)
	}

	if s.publisher != nil {
		if err := s.publisher.OrderConfirmed(ctx, o); err != nil {
			slog.ErrorContext(ctx, "failed to publish order confirmed event",
				"order_number", orderNumber, "error", err)
		}
	}

	return &Result{
		OrderID:       o.ID,
		OrderNumber:   o.Number,
		PaymentID:     payment.ID,
		PaymentStatus: payment.Status,
		ReceiptURL:    payment.ReceiptURL,
	}, nil
}

func validate(req Request) *Error {
	if req.SourceID == "" {
		return newError(KindValidation, "Payment source is required", nil)
	}
	if len(req.Items) == 0 {
		return newError(KindValidation, "Cart is empty", nil)
	}
	if req.ShippingAddress.IsZero() {
		return newError(KindValidation, "Shipping address is required", nil)
	}

	return nil
}

// classify maps provider errors to the checkout taxonomy. The full error is
// logged here; only the sanitized message travels to the caller.
func (s *CheckoutService) classify(ctx context.Context, step string, err error) *Error {
	slog.ErrorContext(ctx, "square "+step+" failed", "error", err)

	var apiErr *square.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case square.ErrCodeCardDeclined:
			return newError(KindPaymentDeclined, "Your card was declined. Please try a different card.", err)
		case square.ErrCodeInvalidCard:
			return newError(KindPayment, "Invalid card details. Please check and try again.", err)
		default:
			return newError(KindPayment, "Payment processing failed", err)
		}
	}

	return newError(KindInternal, "An unexpected error occurred. Please try again.", err)
}

func snapshotItems(items []Item) []order.LineItem {
	out := make([]order.LineItem, len(items))
	for i, it := range items {
		unitCents := money.CentsFromDollars(it.UnitPrice)
		out[i] = order.LineItem{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			UnitPriceCents:  unitCents,
			TotalPriceCents: unitCents * int64(it.Quantity),
			PrimaryColor:    it.PrimaryColor,
			SecondaryColor:  it.SecondaryColor,
			CustomNote:      it.CustomNote,
		}
	}

	return out
}

// itemNote renders the color selections into the note shown on the provider
// side, e.g. "Primary: Red | Secondary: Black | Note: longer please".
func itemNote(it Item) string {
	parts := []string{
		"Primary: " + it.PrimaryColor,
		"Secondary: " + it.SecondaryColor,
	}
	if it.CustomNote != nil && *it.CustomNote != "" {
		parts = append(parts, "Note: "+*it.CustomNote)
	}

	return strings.Join(parts, " | ")
}

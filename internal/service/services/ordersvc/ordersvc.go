package ordersvc

import (
	"context"
	"log/slog"

	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/iorderrepo"
	"github.com/jasonsal23/offroad-paracord/internal/events"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/order"
)

// OrderService is the customer-facing read side of orders plus the
// administrative tracking update.
type OrderService struct {
	orders    iorderrepo.IOrderRepository
	publisher events.Publisher
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.orders == nil {
		panic("ordersvc: order repository is required")
	}

	return s
}

// WithOrderRepository sets the order store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *OrderService) {
		s.orders = repo
	}
}

// WithPublisher sets the optional order event publisher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPublisher(p events.Publisher) option {
	return func(s *OrderService) {
		s.publisher = p
	}
}

// Status returns the redacted projection of the order for customer-facing
// display. iorderrepo.ErrNotFound passes through untouched so transport can
// answer 404.
func (s *OrderService) Status(ctx context.Context, number string) (*order.PublicView, error) {
	o, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	view := o.Public()

	return &view, nil
}

// UpdateTracking records shipment details, which also moves the order to
// shipped, and emits the shipped event. Authorization happens in transport
// before this is ever called.
func (s *OrderService) UpdateTracking(ctx context.Context, number, trackingNumber, carrier, estimatedDelivery string) (*order.Order, error) {
	o, err := s.orders.RecordShipment(ctx, number, trackingNumber, carrier, estimatedDelivery)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.OrderShipped(ctx, o); err != nil {
			slog.ErrorContext(ctx, "failed to publish order shipped event",
				"order_number", o.Number, "error", err)
		}
	}

	return o, nil
}

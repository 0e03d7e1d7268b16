package order

import (
	"time"

	"github.com/jasonsal23/offroad-paracord/internal/service/models/address"
)

// LineItem is a snapshot of a cart line at the moment the order was paid.
// It copies the unit price so later catalog changes cannot alter the record.
type LineItem struct {
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	Quantity        int     `json:"quantity"`
	UnitPriceCents  int64   `json:"unitPriceCents"`
	TotalPriceCents int64   `json:"totalPriceCents"`
	PrimaryColor    string  `json:"primaryColor"`
	SecondaryColor  string  `json:"secondaryColor"`
	CustomNote      *string `json:"customNote,omitempty"`
}

// Order is the durable post-payment record. It is created only after the
// payment provider confirmed the charge; there is no draft stage.
type Order struct {
	ID              string          `json:"id"`
	Number          string          `json:"orderNumber"`
	SquareOrderID   string          `json:"squareOrderId,omitempty"`
	SquarePaymentID string          `json:"squarePaymentId,omitempty"`
	Items           []LineItem      `json:"items"`
	ShippingAddress address.Address `json:"shippingAddress"`

	SubtotalCents int64 `json:"subtotalCents"`
	ShippingCents int64 `json:"shippingCents"`
	TaxCents      int64 `json:"taxCents"`
	TotalCents    int64 `json:"totalCents"`

	Status Status `json:"status"`

	TrackingNumber    string `json:"trackingNumber,omitempty"`
	TrackingCarrier   string `json:"trackingCarrier,omitempty"`
	EstimatedDelivery string `json:"estimatedDelivery,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	ShippedAt   *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

// Patch is a partial update merged into an existing order. The order number
// is immutable and therefore not patchable.
type Patch struct {
	Status            *Status
	TrackingNumber    *string
	TrackingCarrier   *string
	EstimatedDelivery *string
	PaidAt            *time.Time
	ShippedAt         *time.Time
	DeliveredAt       *time.Time
}

// Apply merges the patch into the order. Lifecycle timestamps are one-shot:
// once set they are never overwritten or cleared.
func (o *Order) Apply(p Patch) {
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.TrackingNumber != nil {
		o.TrackingNumber = *p.TrackingNumber
	}
	if p.TrackingCarrier != nil {
		o.TrackingCarrier = *p.TrackingCarrier
	}
	if p.EstimatedDelivery != nil {
		o.EstimatedDelivery = *p.EstimatedDelivery
	}
	if p.PaidAt != nil && o.PaidAt == nil {
		o.PaidAt = cloneTime(p.PaidAt)
	}
	if p.ShippedAt != nil && o.ShippedAt == nil {
		o.ShippedAt = cloneTime(p.ShippedAt)
	}
	if p.DeliveredAt != nil && o.DeliveredAt == nil {
		o.DeliveredAt = cloneTime(p.DeliveredAt)
	}
}

// Clone returns a deep copy so stores can hand out records without aliasing
// their internal state.
func (o *Order) Clone() *Order {
	c := *o
	c.Items = make([]LineItem, len(o.Items))
	copy(c.Items, o.Items)
	for i := range c.Items {
		if o.Items[i].CustomNote != nil {
			note := *o.Items[i].CustomNote
			c.Items[i].CustomNote = &note
		}
	}
	c.PaidAt = cloneTime(o.PaidAt)
	c.ShippedAt = cloneTime(o.ShippedAt)
	c.DeliveredAt = cloneTime(o.DeliveredAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

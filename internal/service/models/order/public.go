package order

import (
	"time"

	"github.com/jasonsal23/offroad-paracord/internal/service/models/money"
)

// PublicAddress is the customer-facing slice of a shipping address. Street,
// email and phone are withheld on purpose.
type PublicAddress struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// PublicLineItem mirrors LineItem with prices in dollars for API output.
type PublicLineItem struct {
	ProductID      string  `json:"productId"`
	ProductName    string  `json:"productName"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unitPrice"`
	TotalPrice     float64 `json:"totalPrice"`
	PrimaryColor   string  `json:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor"`
	CustomNote     *string `json:"customNote,omitempty"`
}

// PublicView is the redacted projection of an order that is safe to show a
// customer: no internal id and no payment provider identifiers.
type PublicView struct {
	OrderNumber     string           `json:"orderNumber"`
	Status          Status           `json:"status"`
	Items           []PublicLineItem `json:"items"`
	ShippingAddress PublicAddress    `json:"shippingAddress"`

	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shippingCost"`
	Tax          float64 `json:"tax"`
	TotalAmount  float64 `json:"totalAmount"`

	TrackingNumber    string `json:"trackingNumber,omitempty"`
	TrackingCarrier   string `json:"trackingCarrier,omitempty"`
	EstimatedDelivery string `json:"estimatedDelivery,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	ShippedAt   *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

// Public builds the redacted projection of the order.
func (o *Order) Public() PublicView {
	items := make([]PublicLineItem, len(o.Items))
	for i, li := range o.Items {
		items[i] = PublicLineItem{
			ProductID:      li.ProductID,
			ProductName:    li.ProductName,
			Quantity:       li.Quantity,
			UnitPrice:      money.DollarsFromCents(li.UnitPriceCents),
			TotalPrice:     money.DollarsFromCents(li.TotalPriceCents),
			PrimaryColor:   li.PrimaryColor,
			SecondaryColor: li.SecondaryColor,
			CustomNote:     li.CustomNote,
		}
	}

	return PublicView{
		OrderNumber: o.Number,
		Status:      o.Status,
		Items:       items,
		ShippingAddress: PublicAddress{
			FirstName:  o.ShippingAddress.FirstName,
			LastName:   o.ShippingAddress.LastName,
			City:       o.ShippingAddress.City,
			State:      o.ShippingAddress.State,
			PostalCode: o.ShippingAddress.PostalCode,
		},
		Subtotal:          money.DollarsFromCents(o.SubtotalCents),
		ShippingCost:      money.DollarsFromCents(o.ShippingCents),
		Tax:               money.DollarsFromCents(o.TaxCents),
		TotalAmount:       money.DollarsFromCents(o.TotalCents),
		TrackingNumber:    o.TrackingNumber,
		TrackingCarrier:   o.TrackingCarrier,
		EstimatedDelivery: o.EstimatedDelivery,
		CreatedAt:         o.CreatedAt,
		ShippedAt:         cloneTime(o.ShippedAt),
		DeliveredAt:       cloneTime(o.DeliveredAt),
	}
}

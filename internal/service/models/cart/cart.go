package cart

import (
	"github.com/jasonsal23/offroad-paracord/internal/service/models/product"
)

// LineItem is one entry in a shopper's cart. Two line items are the same
// logical line when product, both colors and the custom note all match.
// CustomNote is a pointer so that an absent note is distinct from an empty one.
type LineItem struct {
	Product        product.Product `json:"product"`
	Quantity       int             `json:"quantity"`
	PrimaryColor   string          `json:"primaryColor"`
	SecondaryColor string          `json:"secondaryColor"`
	CustomNote     *string         `json:"customNote,omitempty"`
}

// State is an immutable snapshot of a shopper's cart. Every transition
// returns a new State with totals recomputed from scratch, so the derived
// fields can never drift from the line items.
type State struct {
	Items           []LineItem `json:"items"`
	TotalItems      int        `json:"totalItems"`
	TotalPriceCents int64      `json:"totalPriceCents"`
}

// New returns an empty cart.
func New() State {
	return State{Items: []LineItem{}}
}

func sameNote(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// matchesVariant is the full identity used when merging additions.
func (li LineItem) matchesVariant(productID, primary, secondary string, note *string) bool {
	return li.Product.ID == productID &&
		li.PrimaryColor == primary &&
		li.SecondaryColor == secondary &&
		sameNote(li.CustomNote, note)
}

// matchesSelection is the reduced identity used by Remove and SetQuantity.
// The custom note is deliberately not part of it: removing a product+color
// selection removes every noted variant of it at once.
func (li LineItem) matchesSelection(productID, primary, secondary string) bool {
	return li.Product.ID == productID &&
		li.PrimaryColor == primary &&
		li.SecondaryColor == secondary
}

func recompute(items []LineItem) State {
	s := State{Items: items}
	for _, li := range items {
		s.TotalItems += li.Quantity
		s.TotalPriceCents += li.Product.PriceCents * int64(li.Quantity)
	}
	return s
}

// Add merges quantity into an existing line with the same variant key or
// appends a new line. Quantity is expected to be positive; validating that
// is the caller's job.
func (s State) Add(p product.Product, quantity int, primary, secondary string, note *string) State {
	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)

	for i := range items {
		if items[i].matchesVariant(p.ID, primary, secondary, note) {
			items[i].Quantity += quantity
			return recompute(items)
		}
	}

	items = append(items, LineItem{
		Product:        p,
		Quantity:       quantity,
		PrimaryColor:   primary,
		SecondaryColor: secondary,
		CustomNote:     note,
	})
	return recompute(items)
}

// Remove drops every line matching the product and color selection.
func (s State) Remove(productID, primary, secondary string) State {
	items := make([]LineItem, 0, len(s.Items))
	for _, li := range s.Items {
		if li.matchesSelection(productID, primary, secondary) {
			continue
		}
		items = append(items, li)
	}
	return recompute(items)
}

// SetQuantity replaces the quantity of the matching line. A quantity of zero
// or less removes the line instead; the cart never keeps a zero-quantity line.
func (s State) SetQuantity(productID, primary, secondary string, quantity int) State {
	if quantity <= 0 {
		return s.Remove(productID, primary, secondary)
	}

	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	for i := range items {
		if items[i].matchesSelection(productID, primary, secondary) {
			items[i].Quantity = quantity
		}
	}
	return recompute(items)
}

// Clear returns an empty cart.
func (s State) Clear() State {
	return New()
}

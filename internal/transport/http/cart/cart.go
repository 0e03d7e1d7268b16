package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	cartmodel "github.com/jasonsal23/offroad-paracord/internal/service/models/cart"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/money"
	"github.com/jasonsal23/offroad-paracord/internal/service/services/cartsvc"
	"github.com/jasonsal23/offroad-paracord/internal/transport/http/respond"
)

// SessionHeader carries the opaque cart session id. A request without one
// gets a fresh session; the id is echoed back on every cart response.
const SessionHeader = "X-Cart-Session"

// service is an interface for the cart service layer.
type service interface {
	Get(ctx context.Context, sessionID string) (cartmodel.State, error)
	Add(ctx context.Context, sessionID, productID string, quantity int, primary, secondary string, note *string) (cartmodel.State, error)
	SetQuantity(ctx context.Context, sessionID, productID, primary, secondary string, quantity int) (cartmodel.State, error)
	Remove(ctx context.Context, sessionID, productID, primary, secondary string) (cartmodel.State, error)
	Clear(ctx context.Context, sessionID string) error
}

type lineItemResponse struct {
	ProductID      string  `json:"productId"`
	ProductName    string  `json:"productName"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unitPrice"`
	TotalPrice     float64 `json:"totalPrice"`
	PrimaryColor   string  `json:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor"`
	CustomNote     *string `json:"customNote,omitempty"`
}

type cartResponse struct {
	Success    bool               `json:"success"`
	SessionID  string             `json:"sessionId"`
	Items      []lineItemResponse `json:"items"`
	TotalItems int                `json:"totalItems"`
	TotalPrice float64            `json:"totalPrice"`
}

func toResponse(sessionID string, state cartmodel.State) cartResponse {
	items := make([]lineItemResponse, len(state.Items))
	for i, li := range state.Items {
		items[i] = lineItemResponse{
			ProductID:      li.Product.ID,
			ProductName:    li.Product.Name,
			Quantity:       li.Quantity,
			UnitPrice:      money.DollarsFromCents(li.Product.PriceCents),
			TotalPrice:     money.DollarsFromCents(li.Product.PriceCents * int64(li.Quantity)),
			PrimaryColor:   li.PrimaryColor,
			SecondaryColor: li.SecondaryColor,
			CustomNote:     li.CustomNote,
		}
	}

	return cartResponse{
		Success:    true,
		SessionID:  sessionID,
		Items:      items,
		TotalItems: state.TotalItems,
		TotalPrice: money.DollarsFromCents(state.TotalPriceCents),
	}
}

// session returns the request's cart session id, minting one when absent.
func session(w http.ResponseWriter, r *http.Request) string {
	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	w.Header().Set(SessionHeader, sessionID)

	return sessionID
}

// Get returns the current cart for the session.
func Get(w http.ResponseWriter, r *http.Request, service service) {
	sessionID := session(w, r)

	state, err := service.Get(r.Context(), sessionID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Failed to load cart")
		slog.Error("Error loading cart", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(sessionID, state))
}

type addItemRequest struct {
	ProductID      string  `json:"productId"`
	Quantity       int     `json:"quantity"`
	PrimaryColor   string  `json:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor"`
	CustomNote     *string `json:"customNote,omitempty"`
}

// AddItem merges a product selection into the session's cart.
func AddItem(w http.ResponseWriter, r *http.Request, service service) {
	sessionID := session(w, r)

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")

		return
	}
	if req.ProductID == "" {
		respond.Error(w, http.StatusBadRequest, "productId is required")

		return
	}

	state, err := service.Add(r.Context(), sessionID, req.ProductID, req.Quantity, req.PrimaryColor, req.SecondaryColor, req.CustomNote)
	if err != nil {
		switch {
		case errors.Is(err, cartsvc.ErrInvalidQuantity):
			respond.Error(w, http.StatusBadRequest, "Quantity must be a positive integer")
		case errors.Is(err, cartsvc.ErrUnknownProduct):
			respond.Error(w, http.StatusNotFound, "Product not found")
		default:
			respond.Error(w, http.StatusInternalServerError, "Failed to update cart")
			slog.Error("Error adding cart item", "error", err)
		}

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(sessionID, state))
}

type updateItemRequest struct {
	ProductID      string `json:"productId"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	Quantity       int    `json:"quantity"`
}

// UpdateItem sets the quantity of a line; zero or less removes it.
func UpdateItem(w http.ResponseWriter, r *http.Request, service service) {
	sessionID := session(w, r)

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")

		return
	}
	if req.ProductID == "" {
		respond.Error(w, http.StatusBadRequest, "productId is required")

		return
	}

	state, err := service.SetQuantity(r.Context(), sessionID, req.ProductID, req.PrimaryColor, req.SecondaryColor, req.Quantity)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Failed to update cart")
		slog.Error("Error updating cart item", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(sessionID, state))
}

type removeItemRequest struct {
	ProductID      string `json:"productId"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
}

// RemoveItem drops every line matching the product and color selection.
func RemoveItem(w http.ResponseWriter, r *http.Request, service service) {
	sessionID := session(w, r)

	var req removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")

		return
	}
	if req.ProductID == "" {
		respond.Error(w, http.StatusBadRequest, "productId is required")

		return
	}

	state, err := service.Remove(r.Context(), sessionID, req.ProductID, req.PrimaryColor, req.SecondaryColor)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Failed to update cart")
		slog.Error("Error removing cart item", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(sessionID, state))
}

// Clear empties the session's cart.
func Clear(w http.ResponseWriter, r *http.Request, service service) {
	sessionID := session(w, r)

	if err := service.Clear(r.Context(), sessionID); err != nil {
		respond.Error(w, http.StatusInternalServerError, "Failed to clear cart")
		slog.Error("Error clearing cart", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(sessionID, cartmodel.New()))
}

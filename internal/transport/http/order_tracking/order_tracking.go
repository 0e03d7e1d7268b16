package order_tracking

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/iorderrepo"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/order"
	"github.com/jasonsal23/offroad-paracord/internal/transport/http/respond"
)

// service is an interface for the order service layer.
type service interface {
	UpdateTracking(ctx context.Context, number, trackingNumber, carrier, estimatedDelivery string) (*order.Order, error)
}

type updateRequest struct {
	AdminKey          string `json:"adminKey"`
	TrackingNumber    string `json:"trackingNumber"`
	Carrier           string `json:"carrier"`
	EstimatedDelivery string `json:"estimatedDelivery"`
}

type updateResponse struct {
	Success           bool   `json:"success"`
	OrderNumber       string `json:"orderNumber"`
	Status            string `json:"status"`
	TrackingNumber    string `json:"trackingNumber"`
	Carrier           string `json:"carrier"`
	EstimatedDelivery string `json:"estimatedDelivery,omitempty"`
}

// Update records shipment tracking on an order. The admin key is checked
// before any lookup so probing with a bad key cannot distinguish existing
// orders from missing ones.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")

		return
	}

	adminKey := os.Getenv("ADMIN_SECRET_KEY")
	if adminKey == "" {
		respond.Error(w, http.StatusInternalServerError, "Admin access not configured")
		slog.Error("ADMIN_SECRET_KEY is not set")

		return
	}
	if subtle.ConstantTimeCompare([]byte(req.AdminKey), []byte(adminKey)) != 1 {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")

		return
	}

	if req.TrackingNumber == "" || req.Carrier == "" {
		respond.Error(w, http.StatusBadRequest, "trackingNumber and carrier are required")

		return
	}

	number := order.NormalizeNumber(chi.URLParam(r, "orderNumber"))
	o, err := service.UpdateTracking(r.Context(), number, req.TrackingNumber, req.Carrier, req.EstimatedDelivery)
	if err != nil {
		if errors.Is(err, iorderrepo.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Order not found")

			return
		}

		respond.Error(w, http.StatusInternalServerError, "Failed to update tracking")
		slog.Error("Error updating order tracking", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, updateResponse{
		Success:           true,
		OrderNumber:       o.Number,
		Status:            o.Status.String(),
		TrackingNumber:    o.TrackingNumber,
		Carrier:           o.TrackingCarrier,
		EstimatedDelivery: o.EstimatedDelivery,
	})
}

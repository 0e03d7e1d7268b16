package order_status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/iorderrepo"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/order"
	"github.com/jasonsal23/offroad-paracord/internal/transport/http/respond"
)

// service is an interface for the order service layer.
type service interface {
	Status(ctx context.Context, number string) (*order.PublicView, error)
}

type statusResponse struct {
	Success bool              `json:"success"`
	Order   *order.PublicView `json:"order"`
}

// Status returns the customer-facing projection of an order by its number.
func Status(w http.ResponseWriter, r *http.Request, service service) {
	number := order.NormalizeNumber(chi.URLParam(r, "orderNumber"))
	if number == "" {
		respond.Error(w, http.StatusBadRequest, "Order number is required")

		return
	}

	view, err := service.Status(r.Context(), number)
	if err != nil {
		if errors.Is(err, iorderrepo.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Order not found")

			return
		}

		respond.Error(w, http.StatusInternalServerError, "Failed to load order")
		slog.Error("Error loading order status", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, statusResponse{Success: true, Order: view})
}

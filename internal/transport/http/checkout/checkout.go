package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jasonsal23/offroad-paracord/internal/service/services/checkoutsvc"
	"github.com/jasonsal23/offroad-paracord/internal/transport/http/respond"
	"github.com/jasonsal23/offroad-paracord/pkg/http/middleware/idempotency"
)

// service is an interface for the checkout service layer.
type service interface {
	Checkout(ctx context.Context, req checkoutsvc.Request) (*checkoutsvc.Result, error)
}

type checkoutResponse struct {
	Success     bool   `json:"success"`
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	PaymentID   string `json:"paymentId"`
	Status      string `json:"status"`
	ReceiptURL  string `json:"receiptUrl,omitempty"`
}

// Checkout charges the card and records the order.
func Checkout(w http.ResponseWriter, r *http.Request, service service) {
	var req checkoutsvc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")

		return
	}
	req.IdempotencyKey = idempotency.FromContext(r.Context())

	result, err := service.Checkout(r.Context(), req)
	if err != nil {
		var chkErr *checkoutsvc.Error
		if errors.As(err, &chkErr) {
			respond.Error(w, statusFor(chkErr.Kind), chkErr.Message)

			return
		}

		respond.Error(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		slog.Error("Error processing checkout", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, checkoutResponse{
		Success:     true,
		OrderID:     result.OrderID,
		OrderNumber: result.OrderNumber,
		PaymentID:   result.PaymentID,
		Status:      result.PaymentStatus,
		ReceiptURL:  result.ReceiptURL,
	})
}

// statusFor maps checkout error kinds to HTTP statuses. Card problems are
// client errors; configuration and everything else surface as 500.
func statusFor(kind checkoutsvc.Kind) int {
	switch kind {
	case checkoutsvc.KindValidation, checkoutsvc.KindPaymentDeclined, checkoutsvc.KindPayment:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package order_status_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/iorderrepo"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/order"
	orderstatus "github.com/jasonsal23/offroad-paracord/internal/transport/http/order_status"
)

type fakeService struct {
	view     *order.PublicView
	err      error
	requests []string
}

func (f *fakeService) Status(_ context.Context, number string) (*order.PublicView, error) {
	f.requests = append(f.requests, number)
	if f.err != nil {
		return nil, f.err
	}
	return f.view, nil
}

func getStatus(svc *fakeService, number string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/orders/{orderNumber}", func(w http.ResponseWriter, req *http.Request) {
		orderstatus.Status(w, req, svc)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+number, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestStatus(t *testing.T) {
	t.Parallel()

	svc := &fakeService{view: &order.PublicView{
		OrderNumber: "ORP-TEST-0001",
		Status:      order.StatusConfirmed,
		TotalAmount: 70.79,
		CreatedAt:   time.Now(),
	}}

	rec := getStatus(svc, "ORP-TEST-0001")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Order   struct {
			OrderNumber string  `json:"orderNumber"`
			Status      string  `json:"status"`
			TotalAmount float64 `json:"totalAmount"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ORP-TEST-0001", resp.Order.OrderNumber)
	assert.Equal(t, "confirmed", resp.Order.Status)
	assert.Equal(t, 70.79, resp.Order.TotalAmount)
}

func TestStatusNormalizesNumber(t *testing.T) {
	t.Parallel()

	svc := &fakeService{view: &order.PublicView{OrderNumber: "ORP-TEST-0001"}}

	rec := getStatus(svc, "orp-test-0001")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.requests, 1)
	assert.Equal(t, "ORP-TEST-0001", svc.requests[0])
}

func TestStatusNotFound(t *testing.T) {
	t.Parallel()

	svc := &fakeService{err: iorderrepo.ErrNotFound}

	rec := getStatus(svc, "ORP-MISSING-0000")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Order not found", resp.Error)
}

package checkoutsvc_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/iorderrepo"
	memoryrepo "github.com/jasonsal23/offroad-paracord/internal/dal/repositories/order/memory"
	"github.com/jasonsal23/offroad-paracord/internal/dal/square"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/address"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/order"
	"github.com/jasonsal23/offroad-paracord/internal/service/services/checkoutsvc"
)

type fakeProcessor struct {
	readyErr   error
	orderErr   error
	paymentErr error

	orderCalls   []square.CreateOrderParams
	paymentCalls []square.CreatePaymentParams
}

func (f *fakeProcessor) Ready() error {
	return f.readyErr
}

func (f *fakeProcessor) CreateOrder(_ context.Context, p square.CreateOrderParams) (string, error) {
	f.orderCalls = append(f.orderCalls, p)
	if f.orderErr != nil {
		return "", f.orderErr
	}
	return "sq-order-1", nil
}

func (f *fakeProcessor) CreatePayment(_ context.Context, p square.CreatePaymentParams) (*square.Payment, error) {
	f.paymentCalls = append(f.paymentCalls, p)
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	return &square.Payment{ID: "sq-payment-1", Status: "COMPLETED", ReceiptURL: "https://squareup.com/receipt/1"}, nil
}

func validRequest() checkoutsvc.Request {
	return checkoutsvc.Request{
		SourceID: "cnon:card-nonce",
		Items: []checkoutsvc.Item{
			{ProductID: "headrest-handles-001", ProductName: "Headrest Grab Handles", Quantity: 2, UnitPrice: 30, PrimaryColor: "Black", SecondaryColor: "Red"},
		},
		ShippingAddress: address.Address{
			FirstName:    "Sam",
			LastName:     "Rider",
			Email:        "sam@example.com",
			AddressLine1: "1 Trail Way",
			City:         "Moab",
			State:        "UT",
			PostalCode:   "84532",
		},
		Subtotal:     60,
		ShippingCost: 5.99,
		Tax:          4.80,
		TotalAmount:  70.79,
	}
}

func newService(repo iorderrepo.IOrderRepository, p *fakeProcessor) *checkoutsvc.CheckoutService {
	return checkoutsvc.MustNewCheckoutService(
		checkoutsvc.WithOrderRepository(repo),
		checkoutsvc.WithProcessor(p),
	)
}

func kindOf(t *testing.T, err error) checkoutsvc.Kind {
	t.Helper()
	var chkErr *checkoutsvc.Error
	require.ErrorAs(t, err, &chkErr)
	return chkErr.Kind
}

func TestCheckoutSuccess(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()
	proc := &fakeProcessor{}
	svc := newService(repo, proc)

	res, err := svc.Checkout(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, res.OrderID)
	assert.True(t, strings.HasPrefix(res.OrderNumber, "ORP-"))
	assert.Equal(t, "sq-payment-1", res.PaymentID)
	assert.Equal(t, "COMPLETED", res.PaymentStatus)
	assert.Equal(t, "https://squareup.com/receipt/1", res.ReceiptURL)

	stored, err := repo.GetByNumber(context.Background(), res.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, stored.Status)
	assert.Equal(t, "sq-order-1", stored.SquareOrderID)
	assert.Equal(t, "sq-payment-1", stored.SquarePaymentID)
	assert.Equal(t, int64(6000), stored.SubtotalCents)
	assert.Equal(t, int64(599), stored.ShippingCents)
	assert.Equal(t, int64(480), stored.TaxCents)
	assert.Equal(t, int64(7079), stored.TotalCents)
	require.NotNil(t, stored.PaidAt)

	require.Len(t, stored.Items, 1)
	assert.Equal(t, int64(3000), stored.Items[0].UnitPriceCents)
	assert.Equal(t, int64(6000), stored.Items[0].TotalPriceCents)

	// The payment must be tied to the provider order and charged in cents.
	require.Len(t, proc.paymentCalls, 1)
	assert.Equal(t, "sq-order-1", proc.paymentCalls[0].OrderID)
	assert.Equal(t, int64(7079), proc.paymentCalls[0].AmountCents)
}

func TestCheckoutValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*checkoutsvc.Request)
	}{
		{"missing source", func(r *checkoutsvc.Request) { r.SourceID = "" }},
		{"empty cart", func(r *checkoutsvc.Request) { r.Items = nil }},
		{"missing address", func(r *checkoutsvc.Request) { r.ShippingAddress = address.Address{} }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			proc := &fakeProcessor{}
			svc := newService(memoryrepo.NewRepository(), proc)

			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Checkout(context.Background(), req)
			assert.Equal(t, checkoutsvc.KindValidation, kindOf(t, err))
			assert.Empty(t, proc.orderCalls, "no external call on invalid input")
		})
	}
}

func TestCheckoutNotConfigured(t *testing.T) {
	t.Parallel()

	proc := &fakeProcessor{readyErr: square.ErrNoAccessToken}
	svc := newService(memoryrepo.NewRepository(), proc)

	_, err := svc.Checkout(context.Background(), validRequest())
	assert.Equal(t, checkoutsvc.KindConfig, kindOf(t, err))
	assert.Empty(t, proc.orderCalls)
}

func TestCheckoutCardDeclined(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()
	proc := &fakeProcessor{paymentErr: &square.APIError{StatusCode: 402, Code: square.ErrCodeCardDeclined}}
	svc := newService(repo, proc)

	res, err := svc.Checkout(context.Background(), validRequest())
	assert.Nil(t, res)

	var chkErr *checkoutsvc.Error
	require.ErrorAs(t, err, &chkErr)
	assert.Equal(t, checkoutsvc.KindPaymentDeclined, chkErr.Kind)
	assert.Equal(t, "Your card was declined. Please try a different card.", chkErr.Message)

	// A failed charge must leave no local order behind.
	require.Len(t, proc.orderCalls, 1)
	_, err = repo.GetByNumber(context.Background(), proc.orderCalls[0].ReferenceID)
	assert.ErrorIs(t, err, iorderrepo.ErrNotFound)
}

func TestCheckoutPaymentFailureLeavesNoOrder(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()
	proc := &fakeProcessor{paymentErr: &square.APIError{StatusCode: 400, Code: square.ErrCodeInvalidCard}}
	svc := newService(repo, proc)

	_, err := svcCheckout(svc)
	assert.Equal(t, checkoutsvc.KindPayment, kindOf(t, err))
}

func svcCheckout(svc *checkoutsvc.CheckoutService) (*checkoutsvc.Result, error) {
	return svc.Checkout(context.Background(), validRequest())
}

func TestCheckoutProviderOutage(t *testing.T) {
	t.Parallel()

	proc := &fakeProcessor{orderErr: errors.New("connection refused")}
	svc := newService(memoryrepo.NewRepository(), proc)

	_, err := svcCheckout(svc)
	assert.Equal(t, checkoutsvc.KindInternal, kindOf(t, err))
}

func TestCheckoutIdempotencyKeys(t *testing.T) {
	t.Parallel()

	t.Run("caller key is scoped per call", func(t *testing.T) {
		t.Parallel()

		proc := &fakeProcessor{}
		svc := newService(memoryrepo.NewRepository(), proc)

		req := validRequest()
		req.IdempotencyKey = "retry-123"

		_, err := svc.Checkout(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, proc.orderCalls, 1)
		require.Len(t, proc.paymentCalls, 1)
		assert.Equal(t, "order-retry-123", proc.orderCalls[0].IdempotencyKey)
		assert.Equal(t, "payment-retry-123", proc.paymentCalls[0].IdempotencyKey)
	})

	t.Run("missing key gets generated", func(t *testing.T) {
		t.Parallel()

		proc := &fakeProcessor{}
		svc := newService(memoryrepo.NewRepository(), proc)

		_, err := svc.Checkout(context.Background(), validRequest())
		require.NoError(t, err)

		require.Len(t, proc.orderCalls, 1)
		assert.True(t, strings.HasPrefix(proc.orderCalls[0].IdempotencyKey, "order-"))
		assert.NotEqual(t, "order-", proc.orderCalls[0].IdempotencyKey)
	})
}

func TestCheckoutItemNotes(t *testing.T) {
	t.Parallel()

	proc := &fakeProcessor{}
	svc := newService(memoryrepo.NewRepository(), proc)

	note := "extra long"
	req := validRequest()
	req.Items[0].CustomNote = &note

	_, err := svc.Checkout(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, proc.orderCalls, 1)
	require.Len(t, proc.orderCalls[0].Items, 1)
	assert.Equal(t, "Primary: Black | Secondary: Red | Note: extra long", proc.orderCalls[0].Items[0].Note)
}

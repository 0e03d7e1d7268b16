package memoryrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/iorderrepo"
	memoryrepo "github.com/jasonsal23/offroad-paracord/internal/dal/repositories/order/memory"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/order"
)

func sample() *order.Order {
	now := time.Now()
	return &order.Order{
		ID:     "id-1",
		Number: "ORP-TEST-0001",
		Items: []order.LineItem{
			{ProductID: "p1", ProductName: "Handles", Quantity: 2, UnitPriceCents: 3000, TotalPriceCents: 6000},
		},
		SubtotalCents: 6000,
		TotalCents:    6000,
		Status:        order.StatusConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
		PaidAt:        &now,
	}
}

func TestInsertAndLookup(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sample()))

	byID, err := repo.GetByID(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "ORP-TEST-0001", byID.Number)

	byNumber, err := repo.GetByNumber(ctx, "ORP-TEST-0001")
	require.NoError(t, err)
	assert.Equal(t, "id-1", byNumber.ID)
}

func TestNumberLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()
	require.NoError(t, repo.Insert(context.Background(), sample()))

	o, err := repo.GetByNumber(context.Background(), "  orp-test-0001 ")
	require.NoError(t, err)
	assert.Equal(t, "id-1", o.ID)
}

func TestInsertDuplicate(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()
	require.NoError(t, repo.Insert(context.Background(), sample()))

	err := repo.Insert(context.Background(), sample())
	assert.ErrorIs(t, err, iorderrepo.ErrAlreadyExists)
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, iorderrepo.ErrNotFound)

	_, err = repo.GetByNumber(ctx, "ORP-MISSING-0000")
	assert.ErrorIs(t, err, iorderrepo.ErrNotFound)

	_, err = repo.Update(ctx, "missing", order.Patch{})
	assert.ErrorIs(t, err, iorderrepo.ErrNotFound)

	_, err = repo.RecordShipment(ctx, "ORP-MISSING-0000", "1Z", "UPS", "")
	assert.ErrorIs(t, err, iorderrepo.ErrNotFound)
}

func TestUpdateKeepsBothIndexesConsistent(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, sample()))

	processing := order.StatusProcessing
	updated, err := repo.Update(ctx, "id-1", order.Patch{Status: &processing})
	require.NoError(t, err)
	assert.Equal(t, order.StatusProcessing, updated.Status)

	// Both lookup paths must observe the same record.
	byID, err := repo.GetByID(ctx, "id-1")
	require.NoError(t, err)
	byNumber, err := repo.GetByNumber(ctx, "ORP-TEST-0001")
	require.NoError(t, err)

	assert.Equal(t, byID.Status, byNumber.Status)
	assert.Equal(t, byID.UpdatedAt, byNumber.UpdatedAt)
}

func TestRecordShipment(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, sample()))

	o, err := repo.RecordShipment(ctx, "ORP-TEST-0001", "1Z999", "UPS", "2026-09-08")
	require.NoError(t, err)

	assert.Equal(t, order.StatusShipped, o.Status)
	assert.Equal(t, "1Z999", o.TrackingNumber)
	assert.Equal(t, "UPS", o.TrackingCarrier)
	assert.Equal(t, "2026-09-08", o.EstimatedDelivery)
	require.NotNil(t, o.ShippedAt)

	firstShipped := *o.ShippedAt

	// A second tracking correction must not move the shipped timestamp.
	o, err = repo.RecordShipment(ctx, "ORP-TEST-0001", "1Z000", "FedEx", "")
	require.NoError(t, err)
	assert.Equal(t, "1Z000", o.TrackingNumber)
	assert.Equal(t, "FedEx", o.TrackingCarrier)
	assert.Equal(t, firstShipped, *o.ShippedAt)
}

func TestReturnedRecordsDoNotAliasStore(t *testing.T) {
	t.Parallel()

	repo := memoryrepo.NewRepository()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, sample()))

	o, err := repo.GetByID(ctx, "id-1")
	require.NoError(t, err)
	o.Items[0].Quantity = 99
	o.Status = order.StatusCancelled

	fresh, err := repo.GetByID(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Items[0].Quantity)
	assert.Equal(t, order.StatusConfirmed, fresh.Status)
}

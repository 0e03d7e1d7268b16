package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jasonsal23/offroad-paracord/internal/service/models/money"
)

func TestCentsFromDollars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(3000), money.CentsFromDollars(30))
	assert.Equal(t, int64(599), money.CentsFromDollars(5.99))
	assert.Equal(t, int64(0), money.CentsFromDollars(0))

	// Classic float traps must still land on exact cents.
	assert.Equal(t, int64(5999), money.CentsFromDollars(59.99))
	assert.Equal(t, int64(1010), money.CentsFromDollars(10.10))
	assert.Equal(t, int64(2998), money.CentsFromDollars(29.98))
	assert.Equal(t, int64(7), money.CentsFromDollars(0.07))
}

func TestDollarsFromCents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 30.0, money.DollarsFromCents(3000))
	assert.Equal(t, 5.99, money.DollarsFromCents(599))
	assert.Equal(t, 0.0, money.DollarsFromCents(0))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, cents := range []int64{1, 7, 99, 100, 599, 3000, 123456789} {
		assert.Equal(t, cents, money.CentsFromDollars(money.DollarsFromCents(cents)))
	}
}

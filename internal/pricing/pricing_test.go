package pricing

import (
	"math"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotal(t *testing.T) {
	fare, err := domain.ParseMoney("250.00")
	require.NoError(t, err)

	total, err := Total(fare, 3)
	require.NoError(t, err)
	assert.Equal(t, "750.00", total.String())
	assert.Equal(t, int64(75000), total.Cents())
}

func TestTotal_NoDrift(t *testing.T) {
	// 0.10 * 3 drifts in binary floating point.
	fare, err := domain.ParseMoney("0.10")
	require.NoError(t, err)

	total, err := Total(fare, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(30), total)

	fare, err = domain.ParseMoney("19.99")
	require.NoError(t, err)
	total, err = Total(fare, 10)
	require.NoError(t, err)
	assert.Equal(t, "199.90", total.String())
}

func TestTotal_Rejects(t *testing.T) {
	_, err := Total(domain.Money(-1), 1)
	assert.Error(t, err)

	_, err = Total(domain.Money(100), -1)
	assert.Error(t, err)

	_, err = Total(domain.Money(math.MaxInt64), 2)
	assert.ErrorIs(t, err, domain.ErrMoneyOverflow)

	total, err := Total(domain.Money(100), 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

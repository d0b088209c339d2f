package kernel_test

import (
	"testing"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money with valid inputs", func(t *testing.T) {
		m, err := kernel.NewMoney(28, "INR")

		require.NoError(t, err)
		assert.Equal(t, int64(28), m.Amount())
		assert.Equal(t, "INR", m.Currency())
		require.NoError(t, m.Validate())
	})

	t.Run("should allow zero amount", func(t *testing.T) {
		m, err := kernel.NewMoney(0, "INR")

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-1, "INR")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject malformed currency codes", func(t *testing.T) {
		for _, currency := range []string{"", "IN", "RUPEE"} {
			_, err := kernel.NewMoney(10, currency)
			require.Error(t, err, "currency %q should be rejected", currency)
		}
	})
}

func TestMoney_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var m kernel.Money

		err := m.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrMoneyIsNotConstructed, err)
	})
}

func TestMoney_Multiply(t *testing.T) {
	t.Run("should scale the amount and keep the currency", func(t *testing.T) {
		price, _ := kernel.NewMoney(28, "INR")

		total := price.Multiply(500)

		assert.Equal(t, int64(14000), total.Amount())
		assert.Equal(t, "INR", total.Currency())
		require.NoError(t, total.Validate())
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("should add same-currency values", func(t *testing.T) {
		a, _ := kernel.NewMoney(100, "INR")
		b, _ := kernel.NewMoney(250, "INR")

		sum, err := a.Add(b)

		require.NoError(t, err)
		assert.Equal(t, int64(350), sum.Amount())
	})

	t.Run("should reject mixed currencies", func(t *testing.T) {
		a, _ := kernel.NewMoney(100, "INR")
		b, _ := kernel.NewMoney(100, "USD")

		_, err := a.Add(b)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_IsEqual(t *testing.T) {
	a, _ := kernel.NewMoney(100, "INR")
	b, _ := kernel.NewMoney(100, "INR")
	c, _ := kernel.NewMoney(100, "USD")
	d, _ := kernel.NewMoney(101, "INR")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(d))
}

func TestMoney_String(t *testing.T) {
	m, _ := kernel.NewMoney(14000, "INR")
	assert.Equal(t, "14000 INR", m.String())
}

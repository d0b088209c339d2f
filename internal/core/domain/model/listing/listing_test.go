package listing_test

import (
	"testing"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListing(t *testing.T, available int) *listing.Listing {
	t.Helper()
	price, err := kernel.NewMoney(28, "INR")
	require.NoError(t, err)

	l, err := listing.NewListing(
		kernel.NewUUID(), kernel.NewUUID(), listing.KindCrop, "Organic Wheat", available, price)
	require.NoError(t, err)
	return l
}

func TestNewListing(t *testing.T) {
	t.Run("should create a valid listing", func(t *testing.T) {
		l := newTestListing(t, 1000)

		require.NoError(t, l.Validate())
		assert.Equal(t, 1000, l.Available())
		assert.Equal(t, listing.KindCrop, l.Kind())
		assert.Equal(t, "Organic Wheat", l.Name())
	})

	t.Run("should allow zero availability", func(t *testing.T) {
		l := newTestListing(t, 0)
		assert.False(t, l.CanFulfill(1))
	})

	t.Run("should reject invalid inputs", func(t *testing.T) {
		price, _ := kernel.NewMoney(28, "INR")

		_, err := listing.NewListing(kernel.NewUUID(), kernel.NewUUID(), listing.KindUnknown, "Wheat", 10, price)
		require.Error(t, err)

		_, err = listing.NewListing(kernel.NewUUID(), kernel.NewUUID(), listing.KindCrop, "", 10, price)
		require.Error(t, err)

		_, err = listing.NewListing(kernel.NewUUID(), kernel.NewUUID(), listing.KindCrop, "Wheat", -1, price)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var l *listing.Listing
		require.Error(t, l.Validate())
		require.Error(t, (&listing.Listing{}).Validate())
	})
}

func TestListing_Reserve(t *testing.T) {
	t.Run("should decrement availability", func(t *testing.T) {
		l := newTestListing(t, 1000)

		require.NoError(t, l.Reserve(500))

		assert.Equal(t, 500, l.Available())
	})

	t.Run("should reject over-stock reservations", func(t *testing.T) {
		l := newTestListing(t, 100)

		err := l.Reserve(101)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 100, l.Available())
	})

	t.Run("should reject non-positive quantities", func(t *testing.T) {
		l := newTestListing(t, 100)

		require.Error(t, l.Reserve(0))
		require.Error(t, l.Reserve(-1))
	})
}

func TestListing_Restock(t *testing.T) {
	l := newTestListing(t, 10)

	require.NoError(t, l.Restock(90))
	assert.Equal(t, 100, l.Available())

	require.Error(t, l.Restock(0))
	require.Error(t, l.Restock(-5))
}

func TestParseKind(t *testing.T) {
	crop, err := listing.ParseKind("crop")
	require.NoError(t, err)
	assert.Equal(t, listing.KindCrop, crop)

	product, err := listing.ParseKind("product")
	require.NoError(t, err)
	assert.Equal(t, listing.KindProduct, product)

	_, err = listing.ParseKind("livestock")
	require.Error(t, err)
}

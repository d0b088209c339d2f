package commands_test

import (
	"context"
	"testing"
	"time"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Add(ctx context.Context, l *listing.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) Update(ctx context.Context, l *listing.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) Get(ctx context.Context, id kernel.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockListingUoW struct{ mock.Mock }

func (m *MockListingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockListingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockListingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockListingUoW) ListingRepository() ports.ListingRepository {
	args := m.Called()
	return args.Get(0).(ports.ListingRepository)
}

type MockListingUoWFactory struct{ mock.Mock }

func (m *MockListingUoWFactory) Create() commands.ListingUoW {
	args := m.Called()
	return args.Get(0).(commands.ListingUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ListingRepository() ports.ListingRepository {
	args := m.Called()
	return args.Get(0).(ports.ListingRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func mustParty(t *testing.T, name, email string) order.Party {
	t.Helper()
	p, err := order.NewParty(kernel.NewUUID(), name, email)
	require.NoError(t, err)
	return p
}

func mustAddress(t *testing.T) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("MG Road 12", "Pune", "Maharashtra", "411001", nil)
	require.NoError(t, err)
	return a
}

func mustMoney(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount, "INR")
	require.NoError(t, err)
	return m
}

func mustListing(t *testing.T, sellerID kernel.UUID, available int, unitPrice int64) *listing.Listing {
	t.Helper()
	l, err := listing.NewListing(
		kernel.NewUUID(), sellerID, listing.KindCrop, "Organic Wheat", available, mustMoney(t, unitPrice),
	)
	require.NoError(t, err)
	return l
}

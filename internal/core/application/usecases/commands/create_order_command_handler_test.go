package commands_test

import (
	"errors"
	"testing"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	buyer := mustParty(t, "Asha Patel", "asha@example.com")
	seller := mustParty(t, "Ravi Kumar", "ravi@example.com")
	lst := mustListing(t, seller.ID(), 100, 28)
	cmd, _ := commands.NewCreateOrderCommand(
		kernel.NewUUID(), buyer, seller, lst.ID(), 25, mustAddress(t), order.CashOnDelivery,
	)

	orderRepo := new(MockOrderRepository)
	listingRepo := new(MockListingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ListingRepository").Return(listingRepo).Once(),
		listingRepo.On("Get", mock.Anything, lst.ID()).Return(lst, nil).Once(),
		listingRepo.On("Update", mock.Anything, lst).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", result.BuyerEmail)
	assert.Equal(t, "ravi@example.com", result.SellerEmail)
	assert.Equal(t, "Organic Wheat", result.ItemName)
	assert.Equal(t, 25, result.Quantity)
	assert.Equal(t, "700 INR", result.TotalAmount.String())
	assert.Equal(t, "pending", result.Status)
	assert.Equal(t, 75, lst.Available())

	orderRepo.AssertExpectations(t)
	listingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	buyer := mustParty(t, "Asha Patel", "asha@example.com")
	seller := mustParty(t, "Ravi Kumar", "ravi@example.com")
	lst := mustListing(t, seller.ID(), 10, 28)
	cmd, _ := commands.NewCreateOrderCommand(
		kernel.NewUUID(), buyer, seller, lst.ID(), 25, mustAddress(t), order.CashOnDelivery,
	)

	listingRepo := new(MockListingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ListingRepository").Return(listingRepo).Once(),
		listingRepo.On("Get", mock.Anything, lst.ID()).Return(lst, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, 10, lst.Available(), "stock must stay untouched when the order is rejected")

	listingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_SellerMismatch(t *testing.T) {
	ctx := t.Context()
	buyer := mustParty(t, "Asha Patel", "asha@example.com")
	seller := mustParty(t, "Ravi Kumar", "ravi@example.com")
	otherSeller := mustParty(t, "Meena Iyer", "meena@example.com")
	lst := mustListing(t, otherSeller.ID(), 100, 28)
	cmd, _ := commands.NewCreateOrderCommand(
		kernel.NewUUID(), buyer, seller, lst.ID(), 5, mustAddress(t), order.CashOnDelivery,
	)

	listingRepo := new(MockListingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ListingRepository").Return(listingRepo).Once(),
		listingRepo.On("Get", mock.Anything, lst.ID()).Return(lst, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreateOrderCommandHandler_Handle_ListingNotFound(t *testing.T) {
	ctx := t.Context()
	buyer := mustParty(t, "Asha Patel", "asha@example.com")
	seller := mustParty(t, "Ravi Kumar", "ravi@example.com")
	listingID := kernel.NewUUID()
	cmd, _ := commands.NewCreateOrderCommand(
		kernel.NewUUID(), buyer, seller, listingID, 5, mustAddress(t), order.CashOnDelivery,
	)

	notFound := errs.NewObjectNotFoundError("listingId", listingID)
	listingRepo := new(MockListingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ListingRepository").Return(listingRepo).Once(),
		listingRepo.On("Get", mock.Anything, listingID).Return(nil, notFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	buyer := mustParty(t, "Asha Patel", "asha@example.com")
	seller := mustParty(t, "Ravi Kumar", "ravi@example.com")
	lst := mustListing(t, seller.ID(), 100, 28)
	cmd, _ := commands.NewCreateOrderCommand(
		kernel.NewUUID(), buyer, seller, lst.ID(), 25, mustAddress(t), order.CashOnDelivery,
	)

	orderRepo := new(MockOrderRepository)
	listingRepo := new(MockListingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ListingRepository").Return(listingRepo).Once(),
		listingRepo.On("Get", mock.Anything, lst.ID()).Return(lst, nil).Once(),
		listingRepo.On("Update", mock.Anything, lst).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	orderRepo.AssertExpectations(t)
	listingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

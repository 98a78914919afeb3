package commands_test

import (
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func placeOrderCommand(t *testing.T, customerID kernel.UUID, price int64) commands.PlaceOrderCommand {
	t.Helper()
	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), customerID, []commands.OrderItem{
		{ItemID: "lasagna", Quantity: 2, UnitPrice: kernel.MoneyFromInt(price)},
	})
	require.NoError(t, err)
	return cmd
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	customer, err := user.NewUser(kernel.NewUUID(), "Grace", user.Customer)
	require.NoError(t, err)
	acct, err := account.RestoreAccount(customer.ID(), kernel.MoneyFromInt(50), kernel.Zero, 0)
	require.NoError(t, err)
	cmd := placeOrderCommand(t, customer.ID(), 15)

	users, accounts, orders := new(MockUserRepository), new(MockAccountRepository), new(MockOrderRepository)
	uow, factory := new(MockUoW), new(MockUoWFactory)
	locker, authorizer := new(MockLocker), new(MockAuthorizer)

	locker.On("Lock", ctx, []string{ports.UserLockKey(customer.ID())}).Return(nil).Once()
	factory.On("Create").Return(uow).Once()
	uow.On("UserRepository").Return(users)
	uow.On("AccountRepository").Return(accounts)
	uow.On("OrderRepository").Return(orders)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		users.On("Get", ctx, customer.ID()).Return(customer, nil).Once(),
		authorizer.On("Authorize", customer, access.Order, access.Place).Return(nil).Once(),
		accounts.On("Get", ctx, customer.ID()).Return(acct, nil).Once(),
		accounts.On("Update", ctx, acct).Return(nil).Once(),
		orders.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.ID().IsEqual(cmd.OrderID()) && o.Status() == order.Placed
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewPlaceOrderCommandHandler(factory, commands.NewGate(locker, authorizer, 0))

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "20.00", acct.Balance().String())
	uow.AssertExpectations(t)
	users.AssertExpectations(t)
	accounts.AssertExpectations(t)
	orders.AssertExpectations(t)
	authorizer.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_InsufficientFunds(t *testing.T) {
	// Arrange
	ctx := t.Context()
	customer, err := user.NewUser(kernel.NewUUID(), "Grace", user.Customer)
	require.NoError(t, err)
	acct, err := account.RestoreAccount(customer.ID(), kernel.MoneyFromInt(50), kernel.Zero, 0)
	require.NoError(t, err)
	cmd := placeOrderCommand(t, customer.ID(), 30)

	users, accounts, orders := new(MockUserRepository), new(MockAccountRepository), new(MockOrderRepository)
	uow, factory := new(MockUoW), new(MockUoWFactory)
	locker, authorizer := new(MockLocker), new(MockAuthorizer)

	locker.On("Lock", ctx, mock.Anything).Return(nil).Once()
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(users)
	uow.On("AccountRepository").Return(accounts)
	uow.On("OrderRepository").Return(orders)
	users.On("Get", ctx, customer.ID()).Return(customer, nil).Once()
	authorizer.On("Authorize", customer, access.Order, access.Place).Return(nil).Once()
	accounts.On("Get", ctx, customer.ID()).Return(acct, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewPlaceOrderCommandHandler(factory, commands.NewGate(locker, authorizer, 0))

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrInsufficientFunds)
	assert.Equal(t, "50.00", acct.Balance().String())
	accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_Blacklisted(t *testing.T) {
	ctx := t.Context()
	customer, err := user.RestoreUser(kernel.NewUUID(), "Mallory", user.Customer, true, nil)
	require.NoError(t, err)
	cmd := placeOrderCommand(t, customer.ID(), 5)

	users := new(MockUserRepository)
	uow, factory := new(MockUoW), new(MockUoWFactory)
	locker, authorizer := new(MockLocker), new(MockAuthorizer)

	locker.On("Lock", ctx, mock.Anything).Return(nil).Once()
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(users)
	users.On("Get", ctx, customer.ID()).Return(customer, nil).Once()
	authorizer.On("Authorize", customer, access.Order, access.Place).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewPlaceOrderCommandHandler(factory, commands.NewGate(locker, authorizer, 0))

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrBlacklisted)
	uow.AssertExpectations(t)
}

func TestNewPlaceOrderCommand_Validation(t *testing.T) {
	price := kernel.MoneyFromInt(4)

	t.Run("empty cart", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil)
		require.ErrorIs(t, err, commands.ErrItemsAreRequired)
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), []commands.OrderItem{
			{ItemID: "tea", Quantity: 0, UnitPrice: price},
		})
		require.Error(t, err)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, commands.PlaceOrderCommand{}.Validate(), commands.ErrPlaceOrderCommandIsNotConstructed)
	})
}

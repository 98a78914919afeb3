package commands_test

import (
	"errors"
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type depositFixture struct {
	customer    *user.User
	acct        *account.Account
	users       *MockUserRepository
	accounts    *MockAccountRepository
	uow         *MockAccountUoW
	factory     *MockAccountUoWFactory
	locker      *MockLocker
	authorizer  *MockAuthorizer
	handler     commands.DepositCommandHandler
	command     commands.DepositCommand
	lockKeyArgs []string
}

func newDepositFixture(t *testing.T) *depositFixture {
	t.Helper()

	customer, err := user.NewUser(kernel.NewUUID(), "Ada", user.Customer)
	require.NoError(t, err)
	acct, err := account.NewAccount(customer.ID())
	require.NoError(t, err)
	cmd, err := commands.NewDepositCommand(customer.ID(), kernel.MoneyFromInt(25))
	require.NoError(t, err)

	f := &depositFixture{
		customer:    customer,
		acct:        acct,
		users:       new(MockUserRepository),
		accounts:    new(MockAccountRepository),
		uow:         new(MockAccountUoW),
		factory:     new(MockAccountUoWFactory),
		locker:      new(MockLocker),
		authorizer:  new(MockAuthorizer),
		command:     cmd,
		lockKeyArgs: []string{ports.UserLockKey(customer.ID())},
	}
	f.handler = commands.NewDepositCommandHandler(f.factory, commands.NewGate(f.locker, f.authorizer, 0))
	return f
}

func (f *depositFixture) assertExpectations(t *testing.T) {
	f.factory.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.accounts.AssertExpectations(t)
	f.locker.AssertExpectations(t)
	f.authorizer.AssertExpectations(t)
}

func TestDepositCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	f := newDepositFixture(t)

	f.locker.On("Lock", ctx, f.lockKeyArgs).Return(nil).Once()
	f.factory.On("Create").Return(f.uow).Once()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("UserRepository").Return(f.users).Once(),
		f.users.On("Get", ctx, f.customer.ID()).Return(f.customer, nil).Once(),
		f.authorizer.On("Authorize", f.customer, access.Account, access.Deposit).Return(nil).Once(),
		f.uow.On("AccountRepository").Return(f.accounts).Once(),
		f.accounts.On("Get", ctx, f.customer.ID()).Return(f.acct, nil).Once(),
		f.uow.On("AccountRepository").Return(f.accounts).Once(),
		f.accounts.On("Update", ctx, f.acct).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	// Act
	balance, err := f.handler.Handle(ctx, f.command)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "25.00", balance.String())
	assert.Equal(t, 1, f.locker.released)
	f.assertExpectations(t)
}

func TestDepositCommandHandler_Handle_InvalidCommand(t *testing.T) {
	f := newDepositFixture(t)

	_, err := f.handler.Handle(t.Context(), commands.DepositCommand{})

	require.ErrorIs(t, err, commands.ErrDepositCommandIsNotConstructed)
	f.assertExpectations(t)
}

func TestDepositCommandHandler_Handle_LockError(t *testing.T) {
	ctx := t.Context()
	f := newDepositFixture(t)
	expectedError := errors.New("lock wait exceeded")

	f.locker.On("Lock", ctx, f.lockKeyArgs).Return(expectedError).Once()

	_, err := f.handler.Handle(ctx, f.command)

	assert.Equal(t, expectedError, err)
	f.factory.AssertNotCalled(t, "Create")
	f.assertExpectations(t)
}

func TestDepositCommandHandler_Handle_Unauthorized_RollsBack(t *testing.T) {
	ctx := t.Context()
	f := newDepositFixture(t)
	denied := errs.NewUnauthorizedError(f.customer.ID(), "account:deposit")

	f.locker.On("Lock", ctx, f.lockKeyArgs).Return(nil).Once()
	f.factory.On("Create").Return(f.uow).Once()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("UserRepository").Return(f.users).Once(),
		f.users.On("Get", ctx, f.customer.ID()).Return(f.customer, nil).Once(),
		f.authorizer.On("Authorize", f.customer, access.Account, access.Deposit).Return(denied).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err := f.handler.Handle(ctx, f.command)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Equal(t, 1, f.locker.released)
	f.assertExpectations(t)
}

func TestDepositCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	f := newDepositFixture(t)
	expectedError := errors.New("commit failed")

	f.locker.On("Lock", ctx, f.lockKeyArgs).Return(nil).Once()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("UserRepository").Return(f.users).Once()
	f.users.On("Get", ctx, f.customer.ID()).Return(f.customer, nil).Once()
	f.authorizer.On("Authorize", f.customer, access.Account, access.Deposit).Return(nil).Once()
	f.uow.On("AccountRepository").Return(f.accounts).Twice()
	f.accounts.On("Get", ctx, f.customer.ID()).Return(f.acct, nil).Once()
	f.accounts.On("Update", ctx, f.acct).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(expectedError).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err := f.handler.Handle(ctx, f.command)

	assert.Equal(t, expectedError, err)
	f.assertExpectations(t)
}

func TestNewDepositCommand_RejectsNonPositiveAmounts(t *testing.T) {
	for _, amount := range []int64{0, -5} {
		_, err := commands.NewDepositCommand(kernel.NewUUID(), kernel.MoneyFromInt(amount))
		require.Error(t, err, "amount %d", amount)
	}
}

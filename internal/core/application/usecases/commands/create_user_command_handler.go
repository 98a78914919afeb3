package commands

import (
	"context"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/user"
)

// CreateUserCommandHandler stores a new user, and an account for customers,
// in one transaction.
type CreateUserCommandHandler struct {
	uowFactory AccountUoWFactory
}

func NewCreateUserCommandHandler(uowFactory AccountUoWFactory) CreateUserCommandHandler {
	return CreateUserCommandHandler{uowFactory: uowFactory}
}

func (h *CreateUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	u, err := user.NewUser(cmd.UserID(), cmd.Name(), cmd.Role())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return err
	}

	if u.Role().IsCustomer() {
		acct, acctErr := account.NewAccount(u.ID())
		if acctErr != nil {
			return acctErr
		}
		if err = uow.AccountRepository().Add(ctx, acct); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

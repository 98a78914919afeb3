package commands

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
)

// DepositCommandHandler adds funds under the owner's lock and returns the new balance.
type DepositCommandHandler struct {
	uowFactory AccountUoWFactory
	gate       Gate
}

func NewDepositCommandHandler(uowFactory AccountUoWFactory, gate Gate) DepositCommandHandler {
	return DepositCommandHandler{uowFactory: uowFactory, gate: gate}
}

func (h *DepositCommandHandler) Handle(ctx context.Context, cmd DepositCommand) (kernel.Money, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.Money{}, err
	}

	unlock, err := h.gate.lock(ctx, ports.UserLockKey(cmd.OwnerID()))
	if err != nil {
		return kernel.Money{}, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.Money{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = h.gate.actor(ctx, uow.UserRepository(), cmd.OwnerID(), access.Account, access.Deposit); err != nil {
		return kernel.Money{}, err
	}

	acct, err := uow.AccountRepository().Get(ctx, cmd.OwnerID())
	if err != nil {
		return kernel.Money{}, err
	}
	if err = acct.Deposit(cmd.Amount()); err != nil {
		return kernel.Money{}, err
	}
	if err = uow.AccountRepository().Update(ctx, acct); err != nil {
		return kernel.Money{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.Money{}, err
	}
	return acct.Balance(), nil
}

package commands

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/ports"
)

type ReinstateUserCommandHandler struct {
	uowFactory AccountUoWFactory
	gate       Gate
}

func NewReinstateUserCommandHandler(uowFactory AccountUoWFactory, gate Gate) ReinstateUserCommandHandler {
	return ReinstateUserCommandHandler{uowFactory: uowFactory, gate: gate}
}

func (h *ReinstateUserCommandHandler) Handle(ctx context.Context, cmd ReinstateUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock, err := h.gate.lock(ctx, ports.UserLockKey(cmd.UserID()))
	if err != nil {
		return err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = h.gate.actor(ctx, uow.UserRepository(), cmd.ManagerID(), access.User, access.Reinstate); err != nil {
		return err
	}

	u, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}
	if err = u.Reinstate(); err != nil {
		return err
	}

	if err = uow.UserRepository().Update(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

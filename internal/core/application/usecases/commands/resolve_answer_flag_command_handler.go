package commands

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/ports"
)

// ResolveAnswerFlagCommandHandler takes a flagged answer off the review queue.
type ResolveAnswerFlagCommandHandler struct {
	uowFactory AnswerUoWFactory
	gate       Gate
}

func NewResolveAnswerFlagCommandHandler(uowFactory AnswerUoWFactory, gate Gate) ResolveAnswerFlagCommandHandler {
	return ResolveAnswerFlagCommandHandler{uowFactory: uowFactory, gate: gate}
}

func (h *ResolveAnswerFlagCommandHandler) Handle(ctx context.Context, cmd ResolveAnswerFlagCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock, err := h.gate.lock(ctx, ports.AnswerLockKey(cmd.AnswerID()))
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

	manager, err := h.gate.actor(ctx, uow.UserRepository(), cmd.ManagerID(), access.Answer, access.Review)
	if err != nil {
		return err
	}

	a, err := uow.AnswerRepository().Get(ctx, cmd.AnswerID())
	if err != nil {
		return err
	}
	if err = a.Resolve(manager.ID()); err != nil {
		return err
	}

	if err = uow.AnswerRepository().Update(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

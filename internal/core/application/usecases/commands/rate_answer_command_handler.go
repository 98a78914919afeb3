package commands

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/ports"
)

type RateAnswerCommandHandler struct {
	uowFactory AnswerUoWFactory
	gate       Gate
}

func NewRateAnswerCommandHandler(uowFactory AnswerUoWFactory, gate Gate) RateAnswerCommandHandler {
	return RateAnswerCommandHandler{uowFactory: uowFactory, gate: gate}
}

func (h *RateAnswerCommandHandler) Handle(ctx context.Context, cmd RateAnswerCommand) error {
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

	if _, err = h.gate.actor(ctx, uow.UserRepository(), cmd.RaterID(), access.Answer, access.Rate); err != nil {
		return err
	}

	a, err := uow.AnswerRepository().Get(ctx, cmd.AnswerID())
	if err != nil {
		return err
	}
	if err = a.Rate(cmd.Stars()); err != nil {
		return err
	}

	if err = uow.AnswerRepository().Update(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

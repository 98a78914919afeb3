package commands

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/answer"
	"restaurant/internal/core/ports"
)

// AskAssistantCommandHandler forwards a question to the assistant and keeps
// the reply so it can later be rated.
type AskAssistantCommandHandler struct {
	uowFactory AnswerUoWFactory
	gate       Gate
	assistant  ports.Assistant
}

func NewAskAssistantCommandHandler(
	uowFactory AnswerUoWFactory,
	gate Gate,
	assistant ports.Assistant,
) AskAssistantCommandHandler {
	return AskAssistantCommandHandler{uowFactory: uowFactory, gate: gate, assistant: assistant}
}

func (h *AskAssistantCommandHandler) Handle(ctx context.Context, cmd AskAssistantCommand) (*answer.Answer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	asker, err := h.gate.actor(ctx, uow.UserRepository(), cmd.AskerID(), access.Answer, access.Ask)
	if err != nil {
		return nil, err
	}

	reply, err := h.assistant.Ask(ctx, cmd.Question())
	if err != nil {
		return nil, err
	}

	a, err := answer.NewAnswer(
		cmd.AnswerID(),
		asker.ID(),
		cmd.Question(),
		reply.Text,
		reply.Source,
		reply.Confidence,
		now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.AnswerRepository().Add(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

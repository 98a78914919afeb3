package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrResolveAnswerFlagCommandIsNotConstructed = errors.New(
	"ResolveAnswerFlagCommand must be created via NewResolveAnswerFlagCommand constructor",
)

type ResolveAnswerFlagCommand struct { //nolint:recvcheck //using for validation
	answerID  kernel.UUID
	managerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewResolveAnswerFlagCommand(answerID, managerID kernel.UUID) (ResolveAnswerFlagCommand, error) {
	if err := errors.Join(answerID.Validate(), managerID.Validate()); err != nil {
		return ResolveAnswerFlagCommand{}, err
	}
	return ResolveAnswerFlagCommand{answerID: answerID, managerID: managerID, guard: guard.NewConstructorGuard()}, nil
}

func (c ResolveAnswerFlagCommand) Validate() error {
	return c.guard.Validate(ErrResolveAnswerFlagCommandIsNotConstructed)
}

func (c ResolveAnswerFlagCommand) AnswerID() kernel.UUID { return c.answerID }

func (c ResolveAnswerFlagCommand) ManagerID() kernel.UUID { return c.managerID }

package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrAskAssistantCommandIsNotConstructed = errors.New(
	"AskAssistantCommand must be created via NewAskAssistantCommand constructor",
)

type AskAssistantCommand struct { //nolint:recvcheck //using for validation
	answerID kernel.UUID
	askerID  kernel.UUID
	question string

	guard guard.ConstructorGuard
}

func NewAskAssistantCommand(answerID, askerID kernel.UUID, question string) (AskAssistantCommand, error) {
	question = strings.TrimSpace(question)

	var questionErr error
	if question == "" {
		questionErr = errs.NewValueIsRequiredError("question")
	}

	if err := errors.Join(answerID.Validate(), askerID.Validate(), questionErr); err != nil {
		return AskAssistantCommand{}, err
	}

	return AskAssistantCommand{
		answerID: answerID,
		askerID:  askerID,
		question: question,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AskAssistantCommand) Validate() error {
	return c.guard.Validate(ErrAskAssistantCommandIsNotConstructed)
}

func (c AskAssistantCommand) AnswerID() kernel.UUID { return c.answerID }

func (c AskAssistantCommand) AskerID() kernel.UUID { return c.askerID }

func (c AskAssistantCommand) Question() string { return c.question }

package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/feedback"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrAdjudicateFeedbackCommandIsNotConstructed = errors.New(
	"AdjudicateFeedbackCommand must be created via NewAdjudicateFeedbackCommand constructor",
)

type AdjudicateFeedbackCommand struct { //nolint:recvcheck //using for validation
	feedbackID kernel.UUID
	managerID  kernel.UUID
	outcome    feedback.Outcome
	notes      string

	guard guard.ConstructorGuard
}

func NewAdjudicateFeedbackCommand(
	feedbackID, managerID kernel.UUID,
	outcome feedback.Outcome,
	notes string,
) (AdjudicateFeedbackCommand, error) {
	var outcomeErr error
	if outcome != feedback.Accept && outcome != feedback.Reject {
		outcomeErr = errs.NewValueIsInvalidError("outcome")
	}

	if err := errors.Join(feedbackID.Validate(), managerID.Validate(), outcomeErr); err != nil {
		return AdjudicateFeedbackCommand{}, err
	}

	return AdjudicateFeedbackCommand{
		feedbackID: feedbackID,
		managerID:  managerID,
		outcome:    outcome,
		notes:      strings.TrimSpace(notes),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AdjudicateFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrAdjudicateFeedbackCommandIsNotConstructed)
}

func (c AdjudicateFeedbackCommand) FeedbackID() kernel.UUID { return c.feedbackID }

func (c AdjudicateFeedbackCommand) ManagerID() kernel.UUID { return c.managerID }

func (c AdjudicateFeedbackCommand) Outcome() feedback.Outcome { return c.outcome }

func (c AdjudicateFeedbackCommand) Notes() string { return c.notes }

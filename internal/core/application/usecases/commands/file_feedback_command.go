package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/feedback"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrFileFeedbackCommandIsNotConstructed = errors.New(
	"FileFeedbackCommand must be created via NewFileFeedbackCommand constructor",
)

// FileFeedbackCommand files a complaint or compliment about another
// participant of a delivered order.
type FileFeedbackCommand struct { //nolint:recvcheck //using for validation
	feedbackID  kernel.UUID
	filerID     kernel.UUID
	targetID    kernel.UUID
	orderID     kernel.UUID
	kind        feedback.Kind
	category    feedback.Category
	description string

	guard guard.ConstructorGuard
}

func NewFileFeedbackCommand(
	feedbackID, filerID, targetID, orderID kernel.UUID,
	kind feedback.Kind,
	category feedback.Category,
	description string,
) (FileFeedbackCommand, error) {
	if category == "" {
		category = feedback.CategoryOther
	}

	var kindErr error
	if kind != feedback.Complaint && kind != feedback.Compliment {
		kindErr = errs.NewValueIsInvalidError("kind")
	}

	if err := errors.Join(
		feedbackID.Validate(),
		filerID.Validate(),
		targetID.Validate(),
		orderID.Validate(),
		kindErr,
		category.Validate(),
	); err != nil {
		return FileFeedbackCommand{}, err
	}

	return FileFeedbackCommand{
		feedbackID:  feedbackID,
		filerID:     filerID,
		targetID:    targetID,
		orderID:     orderID,
		kind:        kind,
		category:    category,
		description: strings.TrimSpace(description),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c FileFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrFileFeedbackCommandIsNotConstructed)
}

func (c FileFeedbackCommand) FeedbackID() kernel.UUID { return c.feedbackID }

func (c FileFeedbackCommand) FilerID() kernel.UUID { return c.filerID }

func (c FileFeedbackCommand) TargetID() kernel.UUID { return c.targetID }

func (c FileFeedbackCommand) OrderID() kernel.UUID { return c.orderID }

func (c FileFeedbackCommand) Kind() feedback.Kind { return c.kind }

func (c FileFeedbackCommand) Category() feedback.Category { return c.category }

func (c FileFeedbackCommand) Description() string { return c.description }

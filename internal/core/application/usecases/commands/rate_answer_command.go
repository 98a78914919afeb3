package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/answer"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrRateAnswerCommandIsNotConstructed = errors.New(
	"RateAnswerCommand must be created via NewRateAnswerCommand constructor",
)

// RateAnswerCommand scores an assistant answer with 0..5 stars. Zero stars
// puts the answer in the manager review queue.
type RateAnswerCommand struct { //nolint:recvcheck //using for validation
	answerID kernel.UUID
	raterID  kernel.UUID
	stars    int

	guard guard.ConstructorGuard
}

func NewRateAnswerCommand(answerID, raterID kernel.UUID, stars int) (RateAnswerCommand, error) {
	var starsErr error
	if stars < answer.MinStars || stars > answer.MaxStars {
		starsErr = errs.NewValueIsOutOfRangeError("stars", stars, answer.MinStars, answer.MaxStars)
	}

	if err := errors.Join(answerID.Validate(), raterID.Validate(), starsErr); err != nil {
		return RateAnswerCommand{}, err
	}

	return RateAnswerCommand{answerID: answerID, raterID: raterID, stars: stars, guard: guard.NewConstructorGuard()}, nil
}

func (c RateAnswerCommand) Validate() error {
	return c.guard.Validate(ErrRateAnswerCommandIsNotConstructed)
}

func (c RateAnswerCommand) AnswerID() kernel.UUID { return c.answerID }

func (c RateAnswerCommand) RaterID() kernel.UUID { return c.raterID }

func (c RateAnswerCommand) Stars() int { return c.stars }

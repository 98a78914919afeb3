// Package answer records assistant answers given to users and the review flag
// raised when a user rates an answer with zero stars.
package answer

import (
	"errors"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

const (
	MinStars = 0
	MaxStars = 5
)

var ErrAnswerIsNotConstructed = errors.New("Answer must be created via NewAnswer or RestoreAnswer")

// Answer is one question/answer exchange with the assistant.
type Answer struct {
	id         kernel.UUID
	askerID    kernel.UUID
	question   string
	text       string
	source     string
	confidence float64
	askedAt    time.Time

	ratingCount int
	ratingSum   int

	flagged    bool
	resolvedBy *kernel.UUID

	isConstructed bool
}

// NewAnswer records what the assistant replied. source names the knowledge
// entry the answer came from, if any.
func NewAnswer(id, askerID kernel.UUID, question, text, source string, confidence float64, askedAt time.Time) (*Answer, error) {
	if err := errors.Join(id.Validate(), askerID.Validate()); err != nil {
		return nil, err
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errs.NewValueIsRequiredError("question")
	}
	if confidence < 0 || confidence > 1 {
		return nil, errs.NewValueIsOutOfRangeError("confidence", confidence, 0, 1)
	}

	return &Answer{
		id:            id,
		askerID:       askerID,
		question:      question,
		text:          text,
		source:        source,
		confidence:    confidence,
		askedAt:       askedAt,
		isConstructed: true,
	}, nil
}

func RestoreAnswer(
	id, askerID kernel.UUID,
	question, text, source string,
	confidence float64,
	askedAt time.Time,
	ratingCount, ratingSum int,
	flagged bool,
	resolvedBy *kernel.UUID,
) (*Answer, error) {
	a, err := NewAnswer(id, askerID, question, text, source, confidence, askedAt)
	if err != nil {
		return nil, err
	}
	if ratingCount < 0 || ratingSum < 0 || ratingSum > ratingCount*MaxStars {
		return nil, errs.NewValueIsOutOfRangeError("rating sum", ratingSum, 0, ratingCount*MaxStars)
	}
	a.ratingCount, a.ratingSum = ratingCount, ratingSum
	a.flagged = flagged
	if resolvedBy != nil {
		r := *resolvedBy
		a.resolvedBy = &r
	}
	return a, nil
}

func (a *Answer) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAnswerIsNotConstructed
	}
	return nil
}

func (a *Answer) ID() kernel.UUID { return a.id }

func (a *Answer) AskerID() kernel.UUID { return a.askerID }

func (a *Answer) Question() string { return a.question }

func (a *Answer) Text() string { return a.text }

func (a *Answer) Source() string { return a.source }

func (a *Answer) Confidence() float64 { return a.confidence }

func (a *Answer) AskedAt() time.Time { return a.askedAt }

func (a *Answer) RatingCount() int { return a.ratingCount }

func (a *Answer) RatingSum() int { return a.ratingSum }

// IsFlagged reports whether the answer waits for manager review.
func (a *Answer) IsFlagged() bool { return a.flagged }

// ResolvedBy is the manager who last cleared the flag.
func (a *Answer) ResolvedBy() *kernel.UUID {
	if a.resolvedBy == nil {
		return nil
	}
	r := *a.resolvedBy
	return &r
}

// Rate records stars in [0,5]. Zero stars flags the answer for review.
func (a *Answer) Rate(stars int) error {
	if stars < MinStars || stars > MaxStars {
		return errs.NewValueIsOutOfRangeError("stars", stars, MinStars, MaxStars)
	}
	a.ratingCount++
	a.ratingSum += stars
	if stars == 0 {
		a.flagged = true
	}
	return nil
}

// Resolve clears the review flag.
func (a *Answer) Resolve(managerID kernel.UUID) error {
	if err := managerID.Validate(); err != nil {
		return err
	}
	if !a.flagged {
		return errs.NewInvalidTransitionErrorWithReason("Answered", "Resolved", "answer is not flagged")
	}
	a.flagged = false
	a.resolvedBy = &managerID
	return nil
}

func (a *Answer) Clone() *Answer {
	c := *a
	c.resolvedBy = a.ResolvedBy()
	return &c
}

// Package answerrepo maps assistant answers to the assistant_answers table.
package answerrepo

import (
	"time"

	"restaurant/internal/core/domain/model/answer"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AnswerDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AskerID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Question    string    `gorm:"not null"`
	Text        string
	Source      string
	Confidence  float64
	AskedAt     time.Time  `gorm:"not null"`
	RatingCount int        `gorm:"not null;default:0"`
	RatingSum   int        `gorm:"not null;default:0"`
	Flagged     bool       `gorm:"not null;default:false;index"`
	ResolvedBy  *uuid.UUID `gorm:"type:uuid"`
}

func (AnswerDTO) TableName() string {
	return "assistant_answers"
}

func fromDomain(a *answer.Answer) AnswerDTO {
	var resolvedBy *uuid.UUID
	if id := a.ResolvedBy(); id != nil {
		raw := id.Bytes()
		resolvedBy = &raw
	}

	return AnswerDTO{
		ID:          a.ID().Bytes(),
		AskerID:     a.AskerID().Bytes(),
		Question:    a.Question(),
		Text:        a.Text(),
		Source:      a.Source(),
		Confidence:  a.Confidence(),
		AskedAt:     a.AskedAt(),
		RatingCount: a.RatingCount(),
		RatingSum:   a.RatingSum(),
		Flagged:     a.IsFlagged(),
		ResolvedBy:  resolvedBy,
	}
}

func toDomain(dto AnswerDTO) (*answer.Answer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	askerID, err := kernel.UUIDFromBytes(dto.AskerID[:])
	if err != nil {
		return nil, err
	}

	var resolvedBy *kernel.UUID
	if dto.ResolvedBy != nil {
		r, resolvedErr := kernel.UUIDFromBytes(dto.ResolvedBy[:])
		if resolvedErr != nil {
			return nil, resolvedErr
		}
		resolvedBy = &r
	}

	return answer.RestoreAnswer(
		id, askerID,
		dto.Question, dto.Text, dto.Source,
		dto.Confidence,
		dto.AskedAt,
		dto.RatingCount, dto.RatingSum,
		dto.Flagged,
		resolvedBy,
	)
}

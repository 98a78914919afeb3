// Package feedbackrepo maps complaints and compliments to the feedback table.
// The adjudication is stored inline and is NULL while the record is pending.
package feedbackrepo

import (
	"time"

	"restaurant/internal/core/domain/model/feedback"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type FeedbackDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FilerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_filer_order"`
	TargetID    uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_filer_order"`
	Kind        int       `gorm:"not null"`
	Category    string    `gorm:"not null"`
	Description string
	Status      int       `gorm:"not null;index"`
	FiledAt     time.Time `gorm:"not null"`

	ManagerID *uuid.UUID `gorm:"type:uuid"`
	Notes     string
	DecidedAt *time.Time
}

func (FeedbackDTO) TableName() string {
	return "feedback"
}

func fromDomain(f *feedback.Feedback) FeedbackDTO {
	dto := FeedbackDTO{
		ID:          f.ID().Bytes(),
		FilerID:     f.FilerID().Bytes(),
		TargetID:    f.TargetID().Bytes(),
		OrderID:     f.OrderID().Bytes(),
		Kind:        int(f.Kind()),
		Category:    string(f.Category()),
		Description: f.Description(),
		Status:      int(f.Status()),
		FiledAt:     f.FiledAt(),
	}

	if a := f.Adjudication(); a != nil {
		managerID := a.ManagerID.Bytes()
		decidedAt := a.DecidedAt
		dto.ManagerID = &managerID
		dto.Notes = a.Notes
		dto.DecidedAt = &decidedAt
	}

	return dto
}

func toDomain(dto FeedbackDTO) (*feedback.Feedback, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.FilerID, dto.TargetID, dto.OrderID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	var adjudication *feedback.Adjudication
	if dto.ManagerID != nil {
		managerID, err := kernel.UUIDFromBytes(dto.ManagerID[:])
		if err != nil {
			return nil, err
		}
		adjudication = &feedback.Adjudication{ManagerID: managerID, Notes: dto.Notes}
		if dto.DecidedAt != nil {
			adjudication.DecidedAt = *dto.DecidedAt
		}
	}

	return feedback.RestoreFeedback(
		ids[0], ids[1], ids[2], ids[3],
		feedback.Kind(dto.Kind),
		feedback.Category(dto.Category),
		dto.Description,
		feedback.Status(dto.Status),
		dto.FiledAt,
		adjudication,
	)
}

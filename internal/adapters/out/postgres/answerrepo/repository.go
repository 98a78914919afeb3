package answerrepo

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/answer"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAnswerRepository implements ports.AnswerRepository using GORM.
type GormAnswerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAnswerRepository(db *gorm.DB, tracker aggregateTracker) *GormAnswerRepository {
	return &GormAnswerRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormAnswerRepository) Add(ctx context.Context, aggregate *answer.Answer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAnswerRepository) Update(ctx context.Context, aggregate *answer.Answer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AnswerDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"rating_count": dto.RatingCount,
		"rating_sum":   dto.RatingSum,
		"flagged":      dto.Flagged,
		"resolved_by":  dto.ResolvedBy,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("answer", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAnswerRepository) Get(ctx context.Context, id kernel.UUID) (*answer.Answer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AnswerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("answer", id.String())
		}
		return nil, err
	}

	a, err := toDomain(dto)
	if err != nil {
		return nil, errs.NewStorageFailureError("answer", err)
	}
	return a, nil
}

func (r *GormAnswerRepository) ListFlagged(ctx context.Context) ([]*answer.Answer, error) {
	var dtos []AnswerDTO
	if err := r.db.WithContext(ctx).Where("flagged = ?", true).Order("asked_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]*answer.Answer, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, errs.NewStorageFailureError("answer", err)
		}
		out = append(out, a)
	}
	return out, nil
}

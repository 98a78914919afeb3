package feedbackrepo

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/feedback"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFeedbackRepository implements ports.FeedbackRepository using GORM.
type GormFeedbackRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormFeedbackRepository(db *gorm.DB, tracker aggregateTracker) *GormFeedbackRepository {
	return &GormFeedbackRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add relies on the (filer_id, order_id) unique index as the last line of
// defence; callers check ExistsForFilerAndOrder first.
func (r *GormFeedbackRepository) Add(ctx context.Context, aggregate *feedback.Feedback) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyFiledError(aggregate.FilerID(), aggregate.OrderID())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormFeedbackRepository) Update(ctx context.Context, aggregate *feedback.Feedback) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&FeedbackDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":     dto.Status,
		"manager_id": dto.ManagerID,
		"notes":      dto.Notes,
		"decided_at": dto.DecidedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("feedback", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormFeedbackRepository) Get(ctx context.Context, id kernel.UUID) (*feedback.Feedback, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FeedbackDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("feedback", id.String())
		}
		return nil, err
	}

	f, err := toDomain(dto)
	if err != nil {
		return nil, errs.NewStorageFailureError("feedback", err)
	}
	return f, nil
}

func (r *GormFeedbackRepository) ExistsForFilerAndOrder(ctx context.Context, filerID, orderID kernel.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&FeedbackDTO{}).
		Where("filer_id = ? AND order_id = ?", filerID.Bytes(), orderID.Bytes()).
		Count(&n).Error
	return n > 0, err
}

func (r *GormFeedbackRepository) CountAcceptedComplaintsAgainst(ctx context.Context, userID kernel.UUID) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&FeedbackDTO{}).
		Where("target_id = ? AND kind = ? AND status = ?",
			userID.Bytes(), int(feedback.Complaint), int(feedback.Accepted)).
		Count(&n).Error
	return int(n), err
}

func (r *GormFeedbackRepository) CountPendingForOrder(ctx context.Context, orderID kernel.UUID) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&FeedbackDTO{}).
		Where("order_id = ? AND status = ?", orderID.Bytes(), int(feedback.Pending)).
		Count(&n).Error
	return int(n), err
}

func (r *GormFeedbackRepository) ListPending(ctx context.Context) ([]*feedback.Feedback, error) {
	var dtos []FeedbackDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(feedback.Pending)).
		Order("filed_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	out := make([]*feedback.Feedback, 0, len(dtos))
	for _, dto := range dtos {
		f, err := toDomain(dto)
		if err != nil {
			return nil, errs.NewStorageFailureError("feedback", err)
		}
		out = append(out, f)
	}
	return out, nil
}

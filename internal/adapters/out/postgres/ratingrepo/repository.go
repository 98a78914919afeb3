package ratingrepo

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/rating"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRatingRepository implements ports.RatingRepository using GORM.
type GormRatingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRatingRepository(db *gorm.DB, tracker aggregateTracker) *GormRatingRepository {
	return &GormRatingRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormRatingRepository) AddRating(ctx context.Context, cr rating.ChefRating) error {
	if err := cr.OrderID().Validate(); err != nil {
		return err
	}

	dto := ratingFromDomain(cr)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyRatedError(cr.OrderID())
		}
		return err
	}

	r.tracker.TrackAggregate(cr.OrderID(), cr)
	return nil
}

func (r *GormRatingRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (rating.ChefRating, error) {
	if err := orderID.Validate(); err != nil {
		return rating.ChefRating{}, err
	}

	var dto ChefRatingDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rating.ChefRating{}, errs.NewObjectNotFoundError("rating", orderID.String())
		}
		return rating.ChefRating{}, err
	}

	cr, err := ratingToDomain(dto)
	if err != nil {
		return rating.ChefRating{}, errs.NewStorageFailureError("rating", err)
	}
	return cr, nil
}

// GetScore returns an empty score for a chef nobody has rated yet.
func (r *GormRatingRepository) GetScore(ctx context.Context, chefID kernel.UUID) (*rating.ChefScore, error) {
	if err := chefID.Validate(); err != nil {
		return nil, err
	}

	var dto ChefScoreDTO
	if err := r.db.WithContext(ctx).First(&dto, "chef_id = ?", chefID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rating.NewChefScore(chefID)
		}
		return nil, err
	}

	s, err := scoreToDomain(dto)
	if err != nil {
		return nil, errs.NewStorageFailureError("chef score", err)
	}
	return s, nil
}

func (r *GormRatingRepository) SaveScore(ctx context.Context, score *rating.ChefScore) error {
	if err := score.ChefID().Validate(); err != nil {
		return err
	}

	dto := scoreFromDomain(score)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chef_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"count", "sum"}),
	}).Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(score.ChefID(), score)
	return nil
}

package accountrepo

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAccountRepository implements ports.AccountRepository using GORM.
type GormAccountRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAccountRepository(db *gorm.DB, tracker aggregateTracker) *GormAccountRepository {
	return &GormAccountRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormAccountRepository) Add(ctx context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.OwnerID(), aggregate)
	return nil
}

func (r *GormAccountRepository) Update(ctx context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AccountDTO{}).
		Where("owner_id = ?", dto.OwnerID).
		Updates(map[string]any{
			"balance":          dto.Balance,
			"lifetime_spend":   dto.LifetimeSpend,
			"completed_orders": dto.CompletedOrders,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("account", aggregate.OwnerID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.OwnerID(), aggregate)
	return nil
}

func (r *GormAccountRepository) Get(ctx context.Context, ownerID kernel.UUID) (*account.Account, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	if err := r.db.WithContext(ctx).First(&dto, "owner_id = ?", ownerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("account", ownerID.String())
		}
		return nil, err
	}

	a, err := toDomain(dto)
	if err != nil {
		return nil, errs.NewStorageFailureError("account", err)
	}
	return a, nil
}

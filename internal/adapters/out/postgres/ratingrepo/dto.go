// Package ratingrepo maps chef ratings and the per-chef running score to the
// chef_ratings and chef_scores tables.
package ratingrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/rating"

	"github.com/google/uuid"
)

// ChefRatingDTO is keyed by order: an order is rated at most once.
type ChefRatingDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChefID     uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null"`
	Stars      int       `gorm:"not null"`
	RatedAt    time.Time `gorm:"not null"`
}

func (ChefRatingDTO) TableName() string {
	return "chef_ratings"
}

type ChefScoreDTO struct {
	ChefID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Count  int       `gorm:"not null"`
	Sum    int       `gorm:"not null"`
}

func (ChefScoreDTO) TableName() string {
	return "chef_scores"
}

func ratingFromDomain(r rating.ChefRating) ChefRatingDTO {
	return ChefRatingDTO{
		OrderID:    r.OrderID().Bytes(),
		ChefID:     r.ChefID().Bytes(),
		CustomerID: r.CustomerID().Bytes(),
		Stars:      r.Stars(),
		RatedAt:    r.RatedAt(),
	}
}

func ratingToDomain(dto ChefRatingDTO) (rating.ChefRating, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return rating.ChefRating{}, err
	}
	chefID, err := kernel.UUIDFromBytes(dto.ChefID[:])
	if err != nil {
		return rating.ChefRating{}, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return rating.ChefRating{}, err
	}
	return rating.NewChefRating(orderID, chefID, customerID, dto.Stars, dto.RatedAt)
}

func scoreFromDomain(s *rating.ChefScore) ChefScoreDTO {
	return ChefScoreDTO{ChefID: s.ChefID().Bytes(), Count: s.Count(), Sum: s.Sum()}
}

func scoreToDomain(dto ChefScoreDTO) (*rating.ChefScore, error) {
	chefID, err := kernel.UUIDFromBytes(dto.ChefID[:])
	if err != nil {
		return nil, err
	}
	return rating.RestoreChefScore(chefID, dto.Count, dto.Sum)
}

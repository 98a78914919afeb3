// Package rating records per-order chef ratings and keeps a running score per
// chef so the average is available without scanning ratings.
package rating

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

const (
	MinStars = 1
	MaxStars = 5
)

// ChefRating is the customer's verdict on the food of one order.
type ChefRating struct {
	orderID    kernel.UUID
	chefID     kernel.UUID
	customerID kernel.UUID
	stars      int
	ratedAt    time.Time
}

func NewChefRating(orderID, chefID, customerID kernel.UUID, stars int, ratedAt time.Time) (ChefRating, error) {
	for _, id := range []kernel.UUID{orderID, chefID, customerID} {
		if err := id.Validate(); err != nil {
			return ChefRating{}, err
		}
	}
	if stars < MinStars || stars > MaxStars {
		return ChefRating{}, errs.NewValueIsOutOfRangeError("stars", stars, MinStars, MaxStars)
	}

	return ChefRating{
		orderID:    orderID,
		chefID:     chefID,
		customerID: customerID,
		stars:      stars,
		ratedAt:    ratedAt,
	}, nil
}

func (r ChefRating) OrderID() kernel.UUID { return r.orderID }

func (r ChefRating) ChefID() kernel.UUID { return r.chefID }

func (r ChefRating) CustomerID() kernel.UUID { return r.customerID }

func (r ChefRating) Stars() int { return r.stars }

func (r ChefRating) RatedAt() time.Time { return r.ratedAt }

// ChefScore is the running (count, sum) for one chef.
type ChefScore struct {
	chefID kernel.UUID
	count  int
	sum    int
}

// NewChefScore starts an empty score.
func NewChefScore(chefID kernel.UUID) (*ChefScore, error) {
	if err := chefID.Validate(); err != nil {
		return nil, err
	}
	return &ChefScore{chefID: chefID}, nil
}

func RestoreChefScore(chefID kernel.UUID, count, sum int) (*ChefScore, error) {
	s, err := NewChefScore(chefID)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, errs.NewValueIsOutOfRangeError("rating count", count, 0, "unbounded")
	}
	if sum < count*MinStars || sum > count*MaxStars {
		return nil, errs.NewValueIsOutOfRangeError("rating sum", sum, count*MinStars, count*MaxStars)
	}
	s.count, s.sum = count, sum
	return s, nil
}

func (s *ChefScore) ChefID() kernel.UUID { return s.chefID }

func (s *ChefScore) Count() int { return s.count }

func (s *ChefScore) Sum() int { return s.sum }

// Record folds a rating for this chef into the score.
func (s *ChefScore) Record(r ChefRating) error {
	if !r.chefID.IsEqual(s.chefID) {
		return errs.NewValueIsInvalidError("rating belongs to another chef")
	}
	s.count++
	s.sum += r.stars
	return nil
}

// Average is sum/count. ok is false while the chef has no ratings.
func (s *ChefScore) Average() (avg float64, ok bool) {
	if s.count == 0 {
		return 0, false
	}
	return float64(s.sum) / float64(s.count), true
}

func (s *ChefScore) Clone() *ChefScore {
	c := *s
	return &c
}

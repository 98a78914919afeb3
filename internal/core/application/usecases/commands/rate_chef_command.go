package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/rating"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrRateChefCommandIsNotConstructed = errors.New(
	"RateChefCommand must be created via NewRateChefCommand constructor",
)

// RateChefCommand records the customer's 1..5 star rating for the chef who
// prepared a delivered order.
type RateChefCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	stars      int

	guard guard.ConstructorGuard
}

func NewRateChefCommand(orderID, customerID kernel.UUID, stars int) (RateChefCommand, error) {
	var starsErr error
	if stars < rating.MinStars || stars > rating.MaxStars {
		starsErr = errs.NewValueIsOutOfRangeError("stars", stars, rating.MinStars, rating.MaxStars)
	}

	if err := errors.Join(orderID.Validate(), customerID.Validate(), starsErr); err != nil {
		return RateChefCommand{}, err
	}

	return RateChefCommand{
		orderID:    orderID,
		customerID: customerID,
		stars:      stars,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RateChefCommand) Validate() error {
	return c.guard.Validate(ErrRateChefCommandIsNotConstructed)
}

func (c RateChefCommand) OrderID() kernel.UUID { return c.orderID }

func (c RateChefCommand) CustomerID() kernel.UUID { return c.customerID }

func (c RateChefCommand) Stars() int { return c.stars }

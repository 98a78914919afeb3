package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrGetChefRatingQueryIsNotConstructed = errors.New(
	"GetChefRatingQuery must be created via NewGetChefRatingQuery constructor",
)

// GetChefRatingQuery returns a chef's running average. It is public.
type GetChefRatingQuery struct {
	chefID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetChefRatingQuery(chefID kernel.UUID) (GetChefRatingQuery, error) {
	if err := chefID.Validate(); err != nil {
		return GetChefRatingQuery{}, err
	}
	return GetChefRatingQuery{chefID: chefID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetChefRatingQuery) Validate() error {
	return q.guard.Validate(ErrGetChefRatingQueryIsNotConstructed)
}

func (q GetChefRatingQuery) ChefID() kernel.UUID { return q.chefID }

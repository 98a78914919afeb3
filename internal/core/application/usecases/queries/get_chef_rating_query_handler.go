package queries

import (
	"context"

	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

type GetChefRatingQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetChefRatingQueryHandler(uowFactory ports.UnitOfWorkFactory) GetChefRatingQueryHandler {
	return GetChefRatingQueryHandler{uowFactory: uowFactory}
}

// Handle fails with errs.ErrObjectNotFound when the id is not a chef.
func (h GetChefRatingQueryHandler) Handle(ctx context.Context, query GetChefRatingQuery) (ChefRatingView, error) {
	if err := query.Validate(); err != nil {
		return ChefRatingView{}, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return ChefRatingView{}, err
	}
	defer done()

	chef, err := uow.UserRepository().Get(ctx, query.ChefID())
	if err != nil {
		return ChefRatingView{}, err
	}
	if chef.Role() != user.Chef {
		return ChefRatingView{}, errs.NewObjectNotFoundError("chef", query.ChefID().String())
	}

	score, err := uow.RatingRepository().GetScore(ctx, chef.ID())
	if err != nil {
		return ChefRatingView{}, err
	}
	return newChefRatingView(score), nil
}

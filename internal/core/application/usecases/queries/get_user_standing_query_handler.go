package queries

import (
	"context"

	"restaurant/internal/core/ports"
)

type GetUserStandingQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetUserStandingQueryHandler(uowFactory ports.UnitOfWorkFactory) GetUserStandingQueryHandler {
	return GetUserStandingQueryHandler{uowFactory: uowFactory}
}

// Handle lets users read their own standing and managers read anyone's.
func (h GetUserStandingQueryHandler) Handle(ctx context.Context, query GetUserStandingQuery) (StandingView, error) {
	if err := query.Validate(); err != nil {
		return StandingView{}, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return StandingView{}, err
	}
	defer done()

	v, err := uow.UserRepository().Get(ctx, query.ViewerID())
	if err != nil {
		return StandingView{}, err
	}
	if err = selfOrManager(v, query.UserID(), "standing"); err != nil {
		return StandingView{}, err
	}

	u, err := uow.UserRepository().Get(ctx, query.UserID())
	if err != nil {
		return StandingView{}, err
	}
	return newStandingView(u), nil
}

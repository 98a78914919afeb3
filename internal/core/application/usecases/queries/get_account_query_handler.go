package queries

import (
	"context"

	"restaurant/internal/core/ports"
)

type GetAccountQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetAccountQueryHandler(uowFactory ports.UnitOfWorkFactory) GetAccountQueryHandler {
	return GetAccountQueryHandler{uowFactory: uowFactory}
}

func (h GetAccountQueryHandler) Handle(ctx context.Context, query GetAccountQuery) (AccountView, error) {
	if err := query.Validate(); err != nil {
		return AccountView{}, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return AccountView{}, err
	}
	defer done()

	v, err := uow.UserRepository().Get(ctx, query.ViewerID())
	if err != nil {
		return AccountView{}, err
	}
	if err = selfOrManager(v, query.OwnerID(), "account"); err != nil {
		return AccountView{}, err
	}

	acct, err := uow.AccountRepository().Get(ctx, query.OwnerID())
	if err != nil {
		return AccountView{}, err
	}
	return newAccountView(acct), nil
}

package queries

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	authorizer ports.Authorizer
}

func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory, authorizer ports.Authorizer) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory, authorizer: authorizer}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return OrderView{}, err
	}
	defer done()

	v, err := viewer(ctx, h.authorizer, uow.UserRepository(), query.ViewerID(), access.Order, access.View)
	if err != nil {
		return OrderView{}, err
	}

	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}
	if v.Role() != user.Manager && !o.IsParticipant(v.ID()) {
		return OrderView{}, errs.NewUnauthorizedError(v.ID(), "view an order they did not take part in")
	}

	return newOrderView(o), nil
}

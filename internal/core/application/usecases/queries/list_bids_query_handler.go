package queries

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

type ListBidsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	authorizer ports.Authorizer
}

func NewListBidsQueryHandler(uowFactory ports.UnitOfWorkFactory, authorizer ports.Authorizer) ListBidsQueryHandler {
	return ListBidsQueryHandler{uowFactory: uowFactory, authorizer: authorizer}
}

func (h ListBidsQueryHandler) Handle(ctx context.Context, query ListBidsQuery) ([]BidView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return nil, err
	}
	defer done()

	if _, err = viewer(ctx, h.authorizer, uow.UserRepository(), query.ManagerID(), access.Bid, access.List); err != nil {
		return nil, err
	}

	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	var bids []order.Bid
	if query.WithSettled() {
		bids = o.Bids()
	} else {
		bids = o.ActiveBids()
	}

	views := make([]BidView, 0, len(bids))
	for _, b := range bids {
		views = append(views, newBidView(b))
	}
	return views, nil
}

package queries

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/ports"
)

type ListPendingFeedbackQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	authorizer ports.Authorizer
}

func NewListPendingFeedbackQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	authorizer ports.Authorizer,
) ListPendingFeedbackQueryHandler {
	return ListPendingFeedbackQueryHandler{uowFactory: uowFactory, authorizer: authorizer}
}

func (h ListPendingFeedbackQueryHandler) Handle(ctx context.Context, query ListPendingFeedbackQuery) ([]FeedbackView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return nil, err
	}
	defer done()

	if _, err = viewer(ctx, h.authorizer, uow.UserRepository(), query.ManagerID(), access.Feedback, access.List); err != nil {
		return nil, err
	}

	pending, err := uow.FeedbackRepository().ListPending(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]FeedbackView, 0, len(pending))
	for _, f := range pending {
		views = append(views, newFeedbackView(f))
	}
	return views, nil
}

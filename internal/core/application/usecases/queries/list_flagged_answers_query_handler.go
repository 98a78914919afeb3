package queries

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/ports"
)

type ListFlaggedAnswersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	authorizer ports.Authorizer
}

func NewListFlaggedAnswersQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	authorizer ports.Authorizer,
) ListFlaggedAnswersQueryHandler {
	return ListFlaggedAnswersQueryHandler{uowFactory: uowFactory, authorizer: authorizer}
}

func (h ListFlaggedAnswersQueryHandler) Handle(ctx context.Context, query ListFlaggedAnswersQuery) ([]AnswerView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return nil, err
	}
	defer done()

	if _, err = viewer(ctx, h.authorizer, uow.UserRepository(), query.ManagerID(), access.Answer, access.Review); err != nil {
		return nil, err
	}

	flagged, err := uow.AnswerRepository().ListFlagged(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]AnswerView, 0, len(flagged))
	for _, a := range flagged {
		views = append(views, NewAnswerView(a))
	}
	return views, nil
}

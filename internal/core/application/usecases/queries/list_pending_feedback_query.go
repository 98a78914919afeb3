package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrListPendingFeedbackQueryIsNotConstructed = errors.New(
	"ListPendingFeedbackQuery must be created via NewListPendingFeedbackQuery constructor",
)

// ListPendingFeedbackQuery is the manager's adjudication queue, oldest first.
type ListPendingFeedbackQuery struct {
	managerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListPendingFeedbackQuery(managerID kernel.UUID) (ListPendingFeedbackQuery, error) {
	if err := managerID.Validate(); err != nil {
		return ListPendingFeedbackQuery{}, err
	}
	return ListPendingFeedbackQuery{managerID: managerID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPendingFeedbackQuery) Validate() error {
	return q.guard.Validate(ErrListPendingFeedbackQueryIsNotConstructed)
}

func (q ListPendingFeedbackQuery) ManagerID() kernel.UUID { return q.managerID }

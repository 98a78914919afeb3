package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrListFlaggedAnswersQueryIsNotConstructed = errors.New(
	"ListFlaggedAnswersQuery must be created via NewListFlaggedAnswersQuery constructor",
)

// ListFlaggedAnswersQuery is the review queue of zero-star assistant answers.
type ListFlaggedAnswersQuery struct {
	managerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListFlaggedAnswersQuery(managerID kernel.UUID) (ListFlaggedAnswersQuery, error) {
	if err := managerID.Validate(); err != nil {
		return ListFlaggedAnswersQuery{}, err
	}
	return ListFlaggedAnswersQuery{managerID: managerID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListFlaggedAnswersQuery) Validate() error {
	return q.guard.Validate(ErrListFlaggedAnswersQueryIsNotConstructed)
}

func (q ListFlaggedAnswersQuery) ManagerID() kernel.UUID { return q.managerID }

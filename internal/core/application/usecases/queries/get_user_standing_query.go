package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrGetUserStandingQueryIsNotConstructed = errors.New(
	"GetUserStandingQuery must be created via NewGetUserStandingQuery constructor",
)

// GetUserStandingQuery returns role, VIP flag, blacklist flag and warning log.
type GetUserStandingQuery struct {
	userID   kernel.UUID
	viewerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetUserStandingQuery(userID, viewerID kernel.UUID) (GetUserStandingQuery, error) {
	if err := errors.Join(userID.Validate(), viewerID.Validate()); err != nil {
		return GetUserStandingQuery{}, err
	}
	return GetUserStandingQuery{userID: userID, viewerID: viewerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserStandingQuery) Validate() error {
	return q.guard.Validate(ErrGetUserStandingQueryIsNotConstructed)
}

func (q GetUserStandingQuery) UserID() kernel.UUID { return q.userID }

func (q GetUserStandingQuery) ViewerID() kernel.UUID { return q.viewerID }

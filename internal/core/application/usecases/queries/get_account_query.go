package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrGetAccountQueryIsNotConstructed = errors.New(
	"GetAccountQuery must be created via NewGetAccountQuery constructor",
)

// GetAccountQuery returns balance, lifetime spend and completed orders.
type GetAccountQuery struct {
	ownerID  kernel.UUID
	viewerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAccountQuery(ownerID, viewerID kernel.UUID) (GetAccountQuery, error) {
	if err := errors.Join(ownerID.Validate(), viewerID.Validate()); err != nil {
		return GetAccountQuery{}, err
	}
	return GetAccountQuery{ownerID: ownerID, viewerID: viewerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAccountQuery) Validate() error {
	return q.guard.Validate(ErrGetAccountQueryIsNotConstructed)
}

func (q GetAccountQuery) OwnerID() kernel.UUID { return q.ownerID }

func (q GetAccountQuery) ViewerID() kernel.UUID { return q.viewerID }

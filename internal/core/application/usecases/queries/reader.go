// Package queries contains read operations for retrieving system state.
// Queries never write: each runs in a transaction that is rolled back, checks
// the caller against the capability table and returns plain read models.
package queries

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// readOnly opens a unit of work whose transaction is always rolled back.
func readOnly(ctx context.Context, factory ports.UnitOfWorkFactory) (ports.UnitOfWork, func(), error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	return uow, func() { _ = uow.Rollback(ctx) }, nil
}

func viewer(
	ctx context.Context,
	authorizer ports.Authorizer,
	users ports.UserRepository,
	id kernel.UUID,
	resource, action string,
) (*user.User, error) {
	u, err := users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = authorizer.Authorize(u, resource, action); err != nil {
		return nil, err
	}
	return u, nil
}

// selfOrManager lets users see their own records; managers see everyone's.
func selfOrManager(v *user.User, subject kernel.UUID, what string) error {
	if v.Role() == user.Manager || v.ID().IsEqual(subject) {
		return nil
	}
	return errs.NewUnauthorizedError(v.ID(), "view another user's "+what)
}

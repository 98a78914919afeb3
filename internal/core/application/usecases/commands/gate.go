package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"
)

// Gate bundles the collaborators every state-changing handler consults before
// touching an aggregate: the entity locker and the capability table.
type Gate struct {
	locker     ports.Locker
	authorizer ports.Authorizer
	lockWait   time.Duration
}

// NewGate builds a Gate. lockWait bounds how long a handler waits for its
// entity locks; zero leaves it to the caller's context.
func NewGate(locker ports.Locker, authorizer ports.Authorizer, lockWait time.Duration) Gate {
	return Gate{locker: locker, authorizer: authorizer, lockWait: lockWait}
}

func (g Gate) lock(ctx context.Context, keys ...string) (func(), error) {
	if g.lockWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.lockWait)
		defer cancel()
	}
	return g.locker.Lock(ctx, keys...)
}

// actor loads the caller and checks the capability table.
func (g Gate) actor(ctx context.Context, users ports.UserRepository, id kernel.UUID, resource, action string) (*user.User, error) {
	u, err := users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = g.authorizer.Authorize(u, resource, action); err != nil {
		return nil, err
	}
	return u, nil
}

// peekOrder reads an order outside any lock to learn its immutable
// participants, so that all needed lock keys can be taken up front in order.
func peekOrder(ctx context.Context, factory UoWFactory, id kernel.UUID) (*order.Order, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().Get(ctx, id)
}

func now() time.Time {
	return time.Now().UTC()
}

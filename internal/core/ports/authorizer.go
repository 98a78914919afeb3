package ports

import "restaurant/internal/core/domain/model/user"

// Authorizer checks the capability table. Authorize returns errs.ErrUnauthorized
// when actor's role may not perform action on resource.
type Authorizer interface {
	Authorize(actor *user.User, resource, action string) error
}

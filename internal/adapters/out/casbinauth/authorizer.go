// Package casbinauth enforces the capability table with casbin. Roles are the
// subjects; every row of access.Permissions() becomes one allow policy.
package casbinauth

import (
	"fmt"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewAuthorizer loads perms into a fresh enforcer.
func NewAuthorizer(perms []access.Permission) (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize casbin enforcer: %w", err)
	}

	for _, p := range perms {
		if _, err = enforcer.AddPolicy(p.Role.String(), p.Resource, p.Action); err != nil {
			return nil, fmt.Errorf("failed to add policy %s %s/%s: %w", p.Role, p.Resource, p.Action, err)
		}
	}

	return &Authorizer{enforcer: enforcer}, nil
}

// NewDefaultAuthorizer loads the built-in capability table.
func NewDefaultAuthorizer() (*Authorizer, error) {
	return NewAuthorizer(access.Permissions())
}

func (a *Authorizer) Authorize(actor *user.User, resource, action string) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	allowed, err := a.enforcer.Enforce(actor.Role().String(), resource, action)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !allowed {
		return errs.NewUnauthorizedError(actor.ID(), fmt.Sprintf("%s %s as %s", action, resource, actor.Role()))
	}
	return nil
}

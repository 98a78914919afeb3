package casbinauth_test

import (
	"testing"

	"restaurant/internal/adapters/out/casbinauth"
	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actor(t *testing.T, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), role.String(), role)
	require.NoError(t, err)
	return u
}

func TestAuthorizer(t *testing.T) {
	auth, err := casbinauth.NewDefaultAuthorizer()
	require.NoError(t, err)

	t.Run("should allow every row of the table", func(t *testing.T) {
		for _, p := range access.Permissions() {
			err := auth.Authorize(actor(t, p.Role), p.Resource, p.Action)
			require.NoError(t, err, "%s %s/%s", p.Role, p.Resource, p.Action)
		}
	})

	t.Run("should deny what the table does not grant", func(t *testing.T) {
		cases := []struct {
			role     user.Role
			resource string
			action   string
		}{
			{user.Customer, access.Bid, access.Assign},
			{user.Delivery, access.Order, access.AdvanceAction(order.Preparing)},
			{user.Chef, access.Order, access.AdvanceAction(order.Delivered)},
			{user.Chef, access.Feedback, access.Adjudicate},
			{user.Manager, access.Order, access.Place},
			{user.Customer, access.User, access.Reinstate},
		}

		for _, c := range cases {
			err := auth.Authorize(actor(t, c.role), c.resource, c.action)
			require.ErrorIs(t, err, errs.ErrUnauthorized, "%s %s/%s", c.role, c.resource, c.action)
		}
	})

	t.Run("should reject unconstructed actors", func(t *testing.T) {
		err := auth.Authorize(&user.User{}, access.Order, access.View)
		require.ErrorIs(t, err, user.ErrUserIsNotConstructed)
	})

	t.Run("should honour a custom table", func(t *testing.T) {
		custom, err := casbinauth.NewAuthorizer([]access.Permission{
			{Role: user.Chef, Resource: access.Answer, Action: access.Review},
		})
		require.NoError(t, err)

		require.NoError(t, custom.Authorize(actor(t, user.Chef), access.Answer, access.Review))
		assert.ErrorIs(t, custom.Authorize(actor(t, user.Manager), access.Answer, access.Review), errs.ErrUnauthorized)
	})
}

package order_test

import (
	"testing"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Run("validate", func(t *testing.T) {
		require.NoError(t, order.Closed.Validate())
		require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
		require.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("parse", func(t *testing.T) {
		s, err := order.ParseStatus("readyforpickup")
		require.NoError(t, err)
		assert.Equal(t, order.ReadyForPickup, s)

		_, err = order.ParseStatus("lost")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("delivered or later", func(t *testing.T) {
		assert.True(t, order.Delivered.IsDeliveredOrLater())
		assert.True(t, order.Closed.IsDeliveredOrLater())
		assert.False(t, order.OutForDelivery.IsDeliveredOrLater())
		assert.False(t, order.Cancelled.IsDeliveredOrLater())
	})
}

func TestTransitions(t *testing.T) {
	trs := order.Transitions()
	require.Len(t, trs, 6)

	actorsFor := func(from, to order.Status) []user.Role {
		for _, tr := range trs {
			if tr.From == from && tr.To == to {
				return tr.Actors
			}
		}
		return nil
	}

	assert.Equal(t, []user.Role{user.Chef}, actorsFor(order.Placed, order.Preparing))
	assert.Equal(t, []user.Role{user.Delivery}, actorsFor(order.OutForDelivery, order.Delivered))
	assert.Equal(t, []user.Role{user.Manager}, actorsFor(order.Delivered, order.Closed))

	trs[0].Actors[0] = user.Manager
	assert.Equal(t, []user.Role{user.Chef}, order.Transitions()[0].Actors)
}

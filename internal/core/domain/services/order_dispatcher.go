package services

import (
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"
)

// OrderDispatcher assigns a ready order to the delivery person behind the
// manager's chosen bid.
//
// Business rules:
//   - the chosen bid must be active on the order (NoSuchBid otherwise)
//   - the bidder must still be a delivery person in good standing; a bidder
//     blacklisted after bidding cannot win
//   - which bid wins is the manager's call; nothing is ranked here
//
// Example usage:
//
//	dispatcher := NewOrderDispatcher()
//	bid, err := dispatcher.Dispatch(o, chosenBidID, bidder)
//	if errors.Is(err, errs.ErrNoSuchBid) {
//	    // stale selection
//	}
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// BidderOf returns the delivery person behind an active bid, so the caller
// can load them before dispatching.
func (d OrderDispatcher) BidderOf(o *order.Order, bidID kernel.UUID) (kernel.UUID, error) {
	if err := o.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	for _, b := range o.ActiveBids() {
		if b.ID().IsEqual(bidID) {
			return b.DeliveryID(), nil
		}
	}
	return kernel.UUID{}, errs.NewNoSuchBidError(o.ID(), bidID)
}

// Dispatch performs the assignment and returns the accepted bid.
func (d OrderDispatcher) Dispatch(o *order.Order, bidID kernel.UUID, bidder *user.User) (order.Bid, error) {
	deliveryID, err := d.BidderOf(o, bidID)
	if err != nil {
		return order.Bid{}, err
	}
	if err = bidder.Validate(); err != nil {
		return order.Bid{}, err
	}
	if !bidder.ID().IsEqual(deliveryID) {
		return order.Bid{}, errs.NewValueIsInvalidError("bidder does not match the chosen bid")
	}
	if bidder.Role() != user.Delivery {
		return order.Bid{}, errs.NewUnauthorizedError(bidder.ID(), "deliver orders")
	}
	if err = bidder.EnsureNotBlacklisted(); err != nil {
		return order.Bid{}, err
	}

	return o.AssignBid(bidID)
}

package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var ErrSubmitBidCommandIsNotConstructed = errors.New(
	"SubmitBidCommand must be created via NewSubmitBidCommand constructor",
)

// SubmitBidCommand offers to deliver a ready order. A later bid from the same
// delivery person replaces the earlier one.
type SubmitBidCommand struct { //nolint:recvcheck //using for validation
	bidID      kernel.UUID
	orderID    kernel.UUID
	deliveryID kernel.UUID
	terms      order.BidTerms

	guard guard.ConstructorGuard
}

func NewSubmitBidCommand(bidID, orderID, deliveryID kernel.UUID, terms order.BidTerms) (SubmitBidCommand, error) {
	if err := errors.Join(
		bidID.Validate(),
		orderID.Validate(),
		deliveryID.Validate(),
		terms.Validate(),
	); err != nil {
		return SubmitBidCommand{}, err
	}

	return SubmitBidCommand{
		bidID:      bidID,
		orderID:    orderID,
		deliveryID: deliveryID,
		terms:      terms,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitBidCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBidCommandIsNotConstructed)
}

func (c SubmitBidCommand) BidID() kernel.UUID { return c.bidID }

func (c SubmitBidCommand) OrderID() kernel.UUID { return c.orderID }

func (c SubmitBidCommand) DeliveryID() kernel.UUID { return c.deliveryID }

func (c SubmitBidCommand) Terms() order.BidTerms { return c.terms }

package order

import (
	"fmt"
	"maps"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// BidStatus tracks a bid through assignment.
type BidStatus int

const (
	BidActive BidStatus = iota + 1
	BidAccepted
	BidRejected
)

func (s BidStatus) String() string {
	switch s {
	case BidActive:
		return "Active"
	case BidAccepted:
		return "Accepted"
	case BidRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

func (s BidStatus) Validate() error {
	if s < BidActive || s > BidRejected {
		return errs.NewValueIsInvalidErrorWithCause("bid status", fmt.Errorf("%d is not a valid bid status", s))
	}
	return nil
}

// BidTerms is the delivery person's offer. The selection among bids is left to
// the manager, so the record stays open: well-known fields plus free-form
// attributes.
type BidTerms struct {
	Fee              *kernel.Money
	EstimatedMinutes int
	Note             string
	Attributes       map[string]string
}

func (t BidTerms) Validate() error {
	if t.Fee != nil {
		if err := t.Fee.ValidateNonNegative("fee"); err != nil {
			return err
		}
	}
	if t.EstimatedMinutes < 0 {
		return errs.NewValueIsOutOfRangeError("estimated minutes", t.EstimatedMinutes, 0, "unbounded")
	}
	return nil
}

func (t BidTerms) clone() BidTerms {
	c := t
	if t.Fee != nil {
		fee := *t.Fee
		c.Fee = &fee
	}
	c.Attributes = maps.Clone(t.Attributes)
	return c
}

// Bid is a delivery offer against an order that is ready for pickup.
type Bid struct {
	id          kernel.UUID
	deliveryID  kernel.UUID
	terms       BidTerms
	submittedAt time.Time
	status      BidStatus
}

// NewBid creates an active bid.
func NewBid(id, deliveryID kernel.UUID, terms BidTerms, submittedAt time.Time) (Bid, error) {
	return RestoreBid(id, deliveryID, terms, submittedAt, BidActive)
}

func RestoreBid(id, deliveryID kernel.UUID, terms BidTerms, submittedAt time.Time, status BidStatus) (Bid, error) {
	if err := id.Validate(); err != nil {
		return Bid{}, err
	}
	if err := deliveryID.Validate(); err != nil {
		return Bid{}, err
	}
	if err := terms.Validate(); err != nil {
		return Bid{}, err
	}
	if err := status.Validate(); err != nil {
		return Bid{}, err
	}

	return Bid{
		id:          id,
		deliveryID:  deliveryID,
		terms:       terms.clone(),
		submittedAt: submittedAt,
		status:      status,
	}, nil
}

func (b Bid) ID() kernel.UUID { return b.id }

func (b Bid) DeliveryID() kernel.UUID { return b.deliveryID }

func (b Bid) Terms() BidTerms { return b.terms.clone() }

func (b Bid) SubmittedAt() time.Time { return b.submittedAt }

func (b Bid) Status() BidStatus { return b.status }

func (b Bid) IsActive() bool { return b.status == BidActive }

package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order is placed without line items.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("items")
)

// Order is the aggregate root for a placed purchase. It owns its line items
// and the bids collected for its delivery.
//
// Order follows these invariants:
//   - Must have a valid identifier and customer
//   - Must have at least one line item; total = sum(qty × price), fixed at placement
//   - Status only moves along the edges returned by Transitions()
//   - A chef is recorded once preparation starts
//   - A delivery person is recorded exactly when a bid is assigned
//   - Bids are accepted only while the order is ReadyForPickup, at most one
//     active bid per delivery person
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	items      []LineItem
	total      kernel.Money
	status     Status

	// chefID is set by the chef who starts preparation.
	chefID *kernel.UUID

	// deliveryID is set by bid assignment.
	deliveryID *kernel.UUID

	// bids are kept in submission order; rejected and accepted bids stay as
	// assignment history.
	bids []Bid

	createdAt   time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// NewOrder creates an order in Placed status. Charging the customer is the
// caller's job and must happen in the same unit of work.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("12.50")
//	item, _ := order.NewLineItem("margherita", 2, price)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.LineItem{item}, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//	// o.Total() == 25.00
func NewOrder(id, customerID kernel.UUID, items []LineItem, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        Placed,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from storage. The status and its dependent
// fields are cross-checked; an inconsistent record is rejected.
func RestoreOrder(
	id, customerID kernel.UUID,
	items []LineItem,
	status Status,
	chefID, deliveryID *kernel.UUID,
	bids []Bid,
	createdAt time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, customerID, items, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	o.status = status
	o.chefID = copyID(chefID)
	o.deliveryID = copyID(deliveryID)
	o.bids = append([]Bid(nil), bids...)
	if deliveredAt != nil {
		t := *deliveredAt
		o.deliveredAt = &t
	}

	if err = o.validateState(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }

func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem { return append([]LineItem(nil), o.items...) }

func (o *Order) Total() kernel.Money { return o.total }

func (o *Order) Status() Status { return o.status }

// ChefID returns the preparing chef, nil before preparation starts.
func (o *Order) ChefID() *kernel.UUID { return copyID(o.chefID) }

// DeliveryID returns the assigned delivery person, nil before assignment.
func (o *Order) DeliveryID() *kernel.UUID { return copyID(o.deliveryID) }

func (o *Order) CreatedAt() time.Time { return o.createdAt }

// DeliveredAt returns when the order reached Delivered, nil before that.
func (o *Order) DeliveredAt() *time.Time {
	if o.deliveredAt == nil {
		return nil
	}
	t := *o.deliveredAt
	return &t
}

// Bids returns every bid, including rejected and accepted ones, in submission order.
func (o *Order) Bids() []Bid {
	out := make([]Bid, len(o.bids))
	for i, b := range o.bids {
		b.terms = b.terms.clone()
		out[i] = b
	}
	return out
}

// ActiveBids returns the bids still open for assignment, in submission order.
func (o *Order) ActiveBids() []Bid {
	out := make([]Bid, 0, len(o.bids))
	for _, b := range o.Bids() {
		if b.IsActive() {
			out = append(out, b)
		}
	}
	return out
}

// Advance moves the order one step along a TriggerAdvance edge on behalf of actorID.
//
// This method enforces the following business rules:
//   - target must immediately follow the current status, else InvalidTransition
//   - ReadyForPickup → OutForDelivery only happens through AssignBid
//   - Placed → Cancelled only happens through Cancel
//   - the chef who started preparation is the only one who can finish it
//   - only the assigned delivery person can confirm delivery
//
// Role checks belong to the access table; Advance only checks ownership.
//
// Example:
//
//	if err := o.Advance(chefID, order.Preparing, time.Now()); err != nil {
//	    // errs.ErrInvalidTransition or errs.ErrUnauthorized
//	}
func (o *Order) Advance(actorID kernel.UUID, target Status, now time.Time) error {
	if err := o.EnsureAdvanceable(target); err != nil {
		return err
	}

	switch target {
	case Preparing:
		o.chefID = &actorID
	case ReadyForPickup:
		if o.chefID == nil || !o.chefID.IsEqual(actorID) {
			return errs.NewUnauthorizedError(actorID, "finish an order prepared by another chef")
		}
	case Delivered:
		if o.deliveryID == nil || !o.deliveryID.IsEqual(actorID) {
			return errs.NewUnauthorizedError(actorID, "deliver an order assigned to someone else")
		}
		o.deliveredAt = &now
	default:
	}

	o.status = target
	return nil
}

// EnsureAdvanceable checks that target is reachable from the current status
// by a plain advance, without looking at who asks.
func (o *Order) EnsureAdvanceable(target Status) error {
	t, err := o.status.transitionTo(target)
	if err != nil {
		return err
	}

	switch t.Trigger {
	case TriggerAssignment:
		return errs.NewInvalidTransitionErrorWithReason(o.status, target, "requires bid assignment")
	case TriggerCancel:
		return errs.NewInvalidTransitionErrorWithReason(o.status, target, "requires cancellation")
	case TriggerAdvance:
	}
	return nil
}

// Close finishes a Delivered order without an acting user. Used when the
// review window lapses.
func (o *Order) Close() error {
	if _, err := o.status.transitionTo(Closed); err != nil {
		return err
	}
	o.status = Closed
	return nil
}

// Cancel withdraws a Placed order. The customer who placed it or a manager may
// cancel; the caller refunds Total().
func (o *Order) Cancel(actorID kernel.UUID, role user.Role) error {
	if _, err := o.status.transitionTo(Cancelled); err != nil {
		return err
	}
	if role != user.Manager && !o.customerID.IsEqual(actorID) {
		return errs.NewUnauthorizedError(actorID, "cancel another customer's order")
	}

	o.status = Cancelled
	return nil
}

// SubmitBid records a delivery offer. A second bid from the same delivery
// person replaces the first one and moves to the end of the queue.
func (o *Order) SubmitBid(bid Bid) error {
	if o.status != ReadyForPickup {
		return errs.NewOrderNotBiddableError(o.id, o.status)
	}
	if !bid.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("bid", fmt.Errorf("bid %s is %s", bid.id, bid.status))
	}

	o.bids = slices.DeleteFunc(o.bids, func(b Bid) bool {
		return b.IsActive() && b.deliveryID.IsEqual(bid.deliveryID)
	})
	bid.terms = bid.terms.clone()
	o.bids = append(o.bids, bid)
	return nil
}

// AssignBid hands the order to the author of bidID and moves it to
// OutForDelivery. The chosen bid is marked Accepted, every other active bid
// Rejected.
func (o *Order) AssignBid(bidID kernel.UUID) (Bid, error) {
	if _, err := o.status.transitionTo(OutForDelivery); err != nil {
		return Bid{}, err
	}

	idx := slices.IndexFunc(o.bids, func(b Bid) bool {
		return b.IsActive() && b.id.IsEqual(bidID)
	})
	if idx < 0 {
		return Bid{}, errs.NewNoSuchBidError(o.id, bidID)
	}

	for i := range o.bids {
		switch {
		case i == idx:
			o.bids[i].status = BidAccepted
		case o.bids[i].IsActive():
			o.bids[i].status = BidRejected
		}
	}

	winner := o.bids[idx]
	deliveryID := winner.deliveryID
	o.deliveryID = &deliveryID
	o.status = OutForDelivery

	winner.terms = winner.terms.clone()
	return winner, nil
}

// IsParticipant reports whether userID took part in the order as customer,
// chef or delivery person.
func (o *Order) IsParticipant(userID kernel.UUID) bool {
	for _, p := range o.Participants() {
		if p.IsEqual(userID) {
			return true
		}
	}
	return false
}

// Participants lists customer, chef and delivery person, skipping unset roles.
func (o *Order) Participants() []kernel.UUID {
	out := []kernel.UUID{o.customerID}
	if o.chefID != nil {
		out = append(out, *o.chefID)
	}
	if o.deliveryID != nil {
		out = append(out, *o.deliveryID)
	}
	return out
}

// EnsureFeedbackAllowed checks that filerID may file feedback on this order.
func (o *Order) EnsureFeedbackAllowed(filerID kernel.UUID) error {
	if !o.status.IsDeliveredOrLater() {
		return errs.NewInvalidTransitionErrorWithReason(o.status, "Reviewed", "order has not been delivered")
	}
	if !o.IsParticipant(filerID) {
		return errs.NewUnauthorizedError(filerID, "file feedback on an order they did not take part in")
	}
	return nil
}

// EnsureRatableBy checks that customerID may rate the chef of this order.
func (o *Order) EnsureRatableBy(customerID kernel.UUID) error {
	if !o.status.IsDeliveredOrLater() {
		return errs.NewInvalidTransitionErrorWithReason(o.status, "Rated", "order has not been delivered")
	}
	if !o.customerID.IsEqual(customerID) {
		return errs.NewUnauthorizedError(customerID, "rate an order placed by another customer")
	}
	if o.chefID == nil {
		return errs.NewValueIsRequiredError("chef")
	}
	return nil
}

// Clone returns an independent copy.
func (o *Order) Clone() *Order {
	c := *o
	c.items = o.Items()
	c.bids = o.Bids()
	c.chefID = copyID(o.chefID)
	c.deliveryID = copyID(o.deliveryID)
	c.deliveredAt = o.DeliveredAt()
	return &c
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}

	total := kernel.Zero
	for _, li := range items {
		if li.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("line item %q was not constructed", li.itemID))
		}
		total = total.Add(li.Subtotal())
	}

	o.items = append([]LineItem(nil), items...)
	o.total = total
	return nil
}

// validateState cross-checks the fields that depend on status.
func (o *Order) validateState() error {
	hasChef := o.status != Placed && o.status != Cancelled
	hasDelivery := o.status == OutForDelivery || o.status.IsDeliveredOrLater()

	var problems []error
	if hasChef != (o.chefID != nil) {
		problems = append(problems, fmt.Errorf("chef presence does not match status %s", o.status))
	}
	if hasDelivery != (o.deliveryID != nil) {
		problems = append(problems, fmt.Errorf("delivery person presence does not match status %s", o.status))
	}
	if o.status.IsDeliveredOrLater() != (o.deliveredAt != nil) {
		problems = append(problems, fmt.Errorf("delivery time presence does not match status %s", o.status))
	}
	for _, b := range o.bids {
		if b.IsActive() && o.status != ReadyForPickup {
			problems = append(problems, fmt.Errorf("active bid %s on order in status %s", b.id, o.status))
		}
	}

	if len(problems) > 0 {
		return errs.NewValueIsInvalidErrorWithCause("order state", errors.Join(problems...))
	}
	return nil
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

package order

import (
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Placed
	Preparing
	ReadyForPickup
	OutForDelivery
	Delivered
	Closed
	Cancelled
)

var statusNames = map[Status]string{
	Placed:         "Placed",
	Preparing:      "Preparing",
	ReadyForPickup: "ReadyForPickup",
	OutForDelivery: "OutForDelivery",
	Delivered:      "Delivered",
	Closed:         "Closed",
	Cancelled:      "Cancelled",
}

// Trigger names the operation that drives a transition.
type Trigger int

const (
	// TriggerAdvance is a plain status advance by the responsible actor.
	TriggerAdvance Trigger = iota + 1
	// TriggerAssignment happens only when a manager assigns a delivery bid.
	TriggerAssignment
	// TriggerCancel happens only through cancellation.
	TriggerCancel
)

// Transition is one edge of the status machine.
type Transition struct {
	From    Status
	To      Status
	Trigger Trigger
	Actors  []user.Role
}

var transitions = []Transition{
	{From: Placed, To: Preparing, Trigger: TriggerAdvance, Actors: []user.Role{user.Chef}},
	{From: Preparing, To: ReadyForPickup, Trigger: TriggerAdvance, Actors: []user.Role{user.Chef}},
	{From: ReadyForPickup, To: OutForDelivery, Trigger: TriggerAssignment, Actors: []user.Role{user.Manager}},
	{From: OutForDelivery, To: Delivered, Trigger: TriggerAdvance, Actors: []user.Role{user.Delivery}},
	{From: Delivered, To: Closed, Trigger: TriggerAdvance, Actors: []user.Role{user.Manager}},
	{From: Placed, To: Cancelled, Trigger: TriggerCancel, Actors: []user.Role{user.Customer, user.VIP, user.Manager}},
}

// Transitions returns a copy of the status machine's edges.
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	for i, t := range transitions {
		t.Actors = append([]user.Role(nil), t.Actors...)
		out[i] = t
	}
	return out
}

// ParseStatus accepts a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if strings.EqualFold(name, s) {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. a corrupted column.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminal reports whether no edge leaves the status.
func (s Status) IsTerminal() bool {
	return s == Closed || s == Cancelled
}

// IsDeliveredOrLater reports whether the food has reached the customer.
func (s Status) IsDeliveredOrLater() bool {
	return s == Delivered || s == Closed
}

// transitionTo returns the edge from s to target, or an InvalidTransition error
// when target does not immediately follow s.
func (s Status) transitionTo(target Status) (Transition, error) {
	for _, t := range transitions {
		if t.From == s && t.To == target {
			return t, nil
		}
	}
	return Transition{}, errs.NewInvalidTransitionError(s, target)
}

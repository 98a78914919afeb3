// Package access is the capability table: which role may perform which action
// on which resource. Order status edges come from order.Transitions(), so the
// status machine stays the single source of truth for who drives the lifecycle.
package access

import (
	"slices"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/user"
)

// Resources.
const (
	Order    = "order"
	Bid      = "bid"
	Feedback = "feedback"
	Rating   = "rating"
	Account  = "account"
	User     = "user"
	Answer   = "answer"
)

// Actions.
const (
	Place      = "place"
	Cancel     = "cancel"
	View       = "view"
	Submit     = "submit"
	List       = "list"
	Assign     = "assign"
	File       = "file"
	Adjudicate = "adjudicate"
	Deposit    = "deposit"
	Reinstate  = "reinstate"
	Ask        = "ask"
	Rate       = "rate"
	Review     = "review"
)

// Permission grants Role the Action on Resource.
type Permission struct {
	Role     user.Role
	Resource string
	Action   string
}

// AdvanceAction is the action for moving an order into target.
func AdvanceAction(target order.Status) string {
	return "advance:" + target.String()
}

var (
	customers = []user.Role{user.Customer, user.VIP}
	everyone  = user.Roles()
)

var static = []struct {
	resource string
	action   string
	roles    []user.Role
}{
	{Order, Place, customers},
	{Order, View, everyone},
	{Bid, Submit, []user.Role{user.Delivery}},
	{Bid, List, []user.Role{user.Manager}},
	{Feedback, File, []user.Role{user.Customer, user.VIP, user.Chef, user.Delivery}},
	{Feedback, Adjudicate, []user.Role{user.Manager}},
	{Feedback, List, []user.Role{user.Manager}},
	{Rating, Submit, customers},
	{Account, Deposit, customers},
	{User, Reinstate, []user.Role{user.Manager}},
	{Answer, Ask, everyone},
	{Answer, Rate, everyone},
	{Answer, Review, []user.Role{user.Manager}},
}

// Permissions returns the full table, deduplicated, transitions first.
func Permissions() []Permission {
	var out []Permission
	add := func(resource, action string, roles []user.Role) {
		for _, r := range roles {
			p := Permission{Role: r, Resource: resource, Action: action}
			if !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
	}

	for _, t := range order.Transitions() {
		switch t.Trigger {
		case order.TriggerAdvance:
			add(Order, AdvanceAction(t.To), t.Actors)
		case order.TriggerAssignment:
			add(Bid, Assign, t.Actors)
		case order.TriggerCancel:
			add(Order, Cancel, t.Actors)
		}
	}
	for _, s := range static {
		add(s.resource, s.action, s.roles)
	}

	return out
}

package user

import (
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"
)

// Role is the capability class of an actor.
type Role int

const (
	UnknownRole Role = iota
	Customer
	VIP
	Chef
	Delivery
	Manager
)

var roleNames = map[Role]string{
	Customer: "Customer",
	VIP:      "VIP",
	Chef:     "Chef",
	Delivery: "Delivery",
	Manager:  "Manager",
}

// Roles lists every valid role in declaration order.
func Roles() []Role {
	return []Role{Customer, VIP, Chef, Delivery, Manager}
}

// ParseRole accepts a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if strings.EqualFold(name, s) {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Unknown"
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// IsCustomer reports whether the role places orders (Customer or VIP).
func (r Role) IsCustomer() bool {
	return r == Customer || r == VIP
}

package user

import (
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

const (
	// MaxWarnings is the active warning count that blacklists a user.
	MaxWarnings = 3

	// DemotionThreshold is the active warning count that demotes a VIP.
	DemotionThreshold = 2
)

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")
	ErrWarningLimitReached  = errs.NewValueIsOutOfRangeError("warnings", MaxWarnings+1, 0, MaxWarnings)
)

// User is the aggregate root for an actor's standing: role, blacklist flag and
// warning log. Balances live in the account aggregate.
type User struct {
	id          kernel.UUID
	name        string
	role        Role
	blacklisted bool
	warnings    []Warning

	isConstructed bool
}

// NewUser registers a user with a clean record.
func NewUser(id kernel.UUID, name string, role Role) (*User, error) {
	u := &User{isConstructed: true}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a user from storage and re-checks the standing
// invariants, so a corrupted record is rejected rather than repaired.
func RestoreUser(id kernel.UUID, name string, role Role, blacklisted bool, warnings []Warning) (*User, error) {
	u, err := NewUser(id, name, role)
	if err != nil {
		return nil, err
	}

	u.blacklisted = blacklisted
	u.warnings = append([]Warning(nil), warnings...)

	active := u.WarningCount()
	if active > MaxWarnings {
		return nil, errs.NewValueIsOutOfRangeError("warnings", active, 0, MaxWarnings)
	}
	if active == MaxWarnings && !blacklisted {
		return nil, errs.NewValueIsInvalidErrorWithCause("blacklisted",
			fmt.Errorf("user %s has %d warnings but is not blacklisted", id, active))
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID { return u.id }

func (u *User) Name() string { return u.name }

func (u *User) Role() Role { return u.role }

func (u *User) IsVIP() bool { return u.role == VIP }

func (u *User) IsBlacklisted() bool { return u.blacklisted }

// Warnings returns the full log, pardoned entries included, in issuance order.
func (u *User) Warnings() []Warning {
	return append([]Warning(nil), u.warnings...)
}

// WarningCount is the number of active (not pardoned) warnings.
func (u *User) WarningCount() int {
	n := 0
	for _, w := range u.warnings {
		if !w.pardoned {
			n++
		}
	}
	return n
}

// EnsureNotBlacklisted fails with a Blacklisted error for suspended users.
func (u *User) EnsureNotBlacklisted() error {
	if u.blacklisted {
		return errs.NewBlacklistedError(u.id)
	}
	return nil
}

// AddWarning appends to the log. It refuses to go past MaxWarnings; the
// consequences of the new count are applied by the caller.
func (u *User) AddWarning(w Warning) error {
	if u.WarningCount() >= MaxWarnings {
		return ErrWarningLimitReached
	}
	u.warnings = append(u.warnings, w)
	return nil
}

// Blacklist suspends the user across all roles.
func (u *User) Blacklist() {
	u.blacklisted = true
}

// Reinstate lifts a blacklist. Every active warning is pardoned but kept in
// the log.
func (u *User) Reinstate() error {
	if !u.blacklisted {
		return errs.NewInvalidTransitionErrorWithReason("Blacklisted", "Reinstated", "user is not blacklisted")
	}
	for i := range u.warnings {
		u.warnings[i].pardoned = true
	}
	u.blacklisted = false
	return nil
}

// Promote turns a Customer into a VIP. Promoting a VIP is a no-op.
func (u *User) Promote() error {
	switch u.role {
	case VIP:
		return nil
	case Customer:
		u.role = VIP
		return nil
	default:
		return errs.NewInvalidTransitionError(u.role, VIP)
	}
}

// Demote turns a VIP back into a Customer. Demoting a Customer is a no-op.
// The warning log is left untouched.
func (u *User) Demote() error {
	switch u.role {
	case Customer:
		return nil
	case VIP:
		u.role = Customer
		return nil
	default:
		return errs.NewInvalidTransitionError(u.role, Customer)
	}
}

// Clone returns an independent copy.
func (u *User) Clone() *User {
	c := *u
	c.warnings = append([]Warning(nil), u.warnings...)
	return &c
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

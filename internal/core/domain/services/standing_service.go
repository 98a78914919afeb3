package services

import (
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/feedback"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"
)

// WarningRecipient decides who is penalized when a complaint is rejected.
type WarningRecipient int

const (
	// WarnFiler treats a rejected complaint as unfounded and warns the complainant.
	WarnFiler WarningRecipient = iota + 1
	// WarnTarget warns the party the complaint was about.
	WarnTarget
)

func ParseWarningRecipient(s string) (WarningRecipient, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "filer":
		return WarnFiler, nil
	case "target":
		return WarnTarget, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("warning recipient", fmt.Errorf("%q is neither filer nor target", s))
	}
}

func (r WarningRecipient) String() string {
	switch r {
	case WarnFiler:
		return "filer"
	case WarnTarget:
		return "target"
	default:
		return "unknown"
	}
}

// StandingChange reports what a warning did to its owner.
type StandingChange struct {
	Warned      bool
	Blacklisted bool
	Demoted     bool
}

// StandingService applies the warning cascade:
//   - a warning is appended to the owner's log
//   - reaching user.MaxWarnings blacklists the owner
//   - otherwise a VIP reaching user.DemotionThreshold is demoted to Customer
//
// A user already at the limit receives no further warnings.
type StandingService struct {
	recipient WarningRecipient
}

func NewStandingService(recipient WarningRecipient) (StandingService, error) {
	if recipient != WarnFiler && recipient != WarnTarget {
		return StandingService{}, errs.NewValueIsInvalidError("warning recipient")
	}
	return StandingService{recipient: recipient}, nil
}

func (s StandingService) Policy() WarningRecipient {
	return s.recipient
}

// WarningRecipientOf returns whom an adjudicated feedback penalizes. ok is
// false when the decision carries no warning.
func (s StandingService) WarningRecipientOf(f *feedback.Feedback) (id kernel.UUID, ok bool) {
	if !f.WarrantsWarning() {
		return kernel.UUID{}, false
	}
	if s.recipient == WarnTarget {
		return f.TargetID(), true
	}
	return f.FilerID(), true
}

// IssueWarning appends w to owner's log and applies the consequences.
func (s StandingService) IssueWarning(owner *user.User, w user.Warning) (StandingChange, error) {
	if err := owner.Validate(); err != nil {
		return StandingChange{}, err
	}
	if owner.WarningCount() >= user.MaxWarnings {
		return StandingChange{}, nil
	}
	if err := owner.AddWarning(w); err != nil {
		return StandingChange{}, err
	}

	change := StandingChange{Warned: true}
	count := owner.WarningCount()

	switch {
	case count >= user.MaxWarnings:
		owner.Blacklist()
		change.Blacklisted = true
	case count >= user.DemotionThreshold && owner.IsVIP():
		if err := owner.Demote(); err != nil {
			return StandingChange{}, err
		}
		change.Demoted = true
	}

	return change, nil
}

// Package feedback contains complaints and compliments filed about an order
// and the manager's one-time adjudication of them.
package feedback

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var ErrFeedbackIsNotConstructed = errors.New("Feedback must be created via NewFeedback or RestoreFeedback")

type Kind int

const (
	UnknownKind Kind = iota
	Complaint
	Compliment
)

func (k Kind) String() string {
	switch k {
	case Complaint:
		return "Complaint"
	case Compliment:
		return "Compliment"
	default:
		return "Unknown"
	}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{Complaint, Compliment} {
		if strings.EqualFold(k.String(), s) {
			return k, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a feedback kind", s))
}

type Status int

const (
	UnknownStatus Status = iota
	Pending
	Accepted
	Rejected
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Accepted:
		return "Accepted"
	case Rejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// Outcome is the manager's binary decision.
type Outcome int

const (
	Accept Outcome = iota + 1
	Reject
)

func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(s) {
	case "accept", "accepted":
		return Accept, nil
	case "reject", "rejected":
		return Reject, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("outcome", fmt.Errorf("%q is neither accept nor reject", s))
	}
}

// Category narrows down what the feedback is about.
type Category string

const (
	CategoryQuality  Category = "quality"
	CategoryService  Category = "service"
	CategoryDelivery Category = "delivery"
	CategoryBehavior Category = "behavior"
	CategoryOther    Category = "other"
)

func (c Category) Validate() error {
	switch c {
	case CategoryQuality, CategoryService, CategoryDelivery, CategoryBehavior, CategoryOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a feedback category", string(c)))
	}
}

// Adjudication records who decided and why.
type Adjudication struct {
	ManagerID kernel.UUID
	Notes     string
	DecidedAt time.Time
}

// Feedback references the users and order it concerns but owns none of them.
// Once adjudicated it never changes again.
type Feedback struct {
	id          kernel.UUID
	filerID     kernel.UUID
	targetID    kernel.UUID
	orderID     kernel.UUID
	kind        Kind
	category    Category
	description string
	status      Status
	filedAt     time.Time

	adjudication *Adjudication

	isConstructed bool
}

// NewFeedback files a Pending complaint or compliment.
func NewFeedback(
	id, filerID, targetID, orderID kernel.UUID,
	kind Kind,
	category Category,
	description string,
	filedAt time.Time,
) (*Feedback, error) {
	f := &Feedback{
		status:        Pending,
		filedAt:       filedAt,
		description:   strings.TrimSpace(description),
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		filerID.Validate(),
		targetID.Validate(),
		orderID.Validate(),
		validateKind(kind),
		category.Validate(),
	); err != nil {
		return nil, err
	}
	if filerID.IsEqual(targetID) {
		return nil, errs.NewValueIsInvalidErrorWithCause("target", errors.New("feedback cannot target its own filer"))
	}

	f.id, f.filerID, f.targetID, f.orderID = id, filerID, targetID, orderID
	f.kind, f.category = kind, category
	return f, nil
}

// RestoreFeedback rebuilds a record from storage. An adjudicated record must
// carry its adjudication and vice versa.
func RestoreFeedback(
	id, filerID, targetID, orderID kernel.UUID,
	kind Kind,
	category Category,
	description string,
	status Status,
	filedAt time.Time,
	adjudication *Adjudication,
) (*Feedback, error) {
	f, err := NewFeedback(id, filerID, targetID, orderID, kind, category, description, filedAt)
	if err != nil {
		return nil, err
	}

	switch {
	case status == Pending && adjudication == nil:
	case (status == Accepted || status == Rejected) && adjudication != nil:
		a := *adjudication
		f.adjudication = &a
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("feedback status",
			fmt.Errorf("status %s does not match adjudication presence", status))
	}

	f.status = status
	return f, nil
}

func (f *Feedback) Validate() error {
	if f == nil || !f.isConstructed {
		return ErrFeedbackIsNotConstructed
	}
	return nil
}

func (f *Feedback) ID() kernel.UUID { return f.id }

func (f *Feedback) FilerID() kernel.UUID { return f.filerID }

func (f *Feedback) TargetID() kernel.UUID { return f.targetID }

func (f *Feedback) OrderID() kernel.UUID { return f.orderID }

func (f *Feedback) Kind() Kind { return f.kind }

func (f *Feedback) Category() Category { return f.category }

func (f *Feedback) Description() string { return f.description }

func (f *Feedback) Status() Status { return f.status }

func (f *Feedback) FiledAt() time.Time { return f.filedAt }

func (f *Feedback) IsPending() bool { return f.status == Pending }

// Adjudication returns the decision record, nil while pending.
func (f *Feedback) Adjudication() *Adjudication {
	if f.adjudication == nil {
		return nil
	}
	a := *f.adjudication
	return &a
}

// Adjudicate settles the feedback. It succeeds exactly once; any later call
// fails with AlreadyAdjudicated and changes nothing.
func (f *Feedback) Adjudicate(managerID kernel.UUID, outcome Outcome, notes string, now time.Time) error {
	if !f.IsPending() {
		return errs.NewAlreadyAdjudicatedError(f.id)
	}
	if err := managerID.Validate(); err != nil {
		return err
	}

	switch outcome {
	case Accept:
		f.status = Accepted
	case Reject:
		f.status = Rejected
	default:
		return errs.NewValueIsInvalidErrorWithCause("outcome", fmt.Errorf("%d is not a valid outcome", outcome))
	}

	f.adjudication = &Adjudication{ManagerID: managerID, Notes: strings.TrimSpace(notes), DecidedAt: now}
	return nil
}

// WarrantsWarning reports whether the decision penalizes someone: only a
// rejected complaint does.
func (f *Feedback) WarrantsWarning() bool {
	return f.kind == Complaint && f.status == Rejected
}

func (f *Feedback) Clone() *Feedback {
	c := *f
	c.adjudication = f.Adjudication()
	return &c
}

func validateKind(k Kind) error {
	if k != Complaint && k != Compliment {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a feedback kind", k))
	}
	return nil
}

package user

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
)

// Warning is a standing penalty. Warnings are never removed from a user's log;
// a manager reinstatement marks them pardoned so they stop counting.
type Warning struct {
	id       kernel.UUID
	causeID  *kernel.UUID
	reason   string
	issuedAt time.Time
	pardoned bool
}

// NewWarning issues a warning. causeID is the feedback that produced it, if any.
func NewWarning(causeID *kernel.UUID, reason string, issuedAt time.Time) Warning {
	return Warning{
		id:       kernel.NewUUID(),
		causeID:  copyID(causeID),
		reason:   reason,
		issuedAt: issuedAt,
	}
}

// RestoreWarning rebuilds a warning from storage.
func RestoreWarning(id kernel.UUID, causeID *kernel.UUID, reason string, issuedAt time.Time, pardoned bool) (Warning, error) {
	if err := id.Validate(); err != nil {
		return Warning{}, err
	}
	return Warning{
		id:       id,
		causeID:  copyID(causeID),
		reason:   reason,
		issuedAt: issuedAt,
		pardoned: pardoned,
	}, nil
}

func (w Warning) ID() kernel.UUID { return w.id }

func (w Warning) CauseID() *kernel.UUID { return copyID(w.causeID) }

func (w Warning) Reason() string { return w.reason }

func (w Warning) IssuedAt() time.Time { return w.issuedAt }

func (w Warning) IsPardoned() bool { return w.pardoned }

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

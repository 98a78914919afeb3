// Package userrepo maps users and their warning log to the users and
// user_warnings tables.
package userrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name        string       `gorm:"not null"`
	Role        int          `gorm:"not null"`
	Blacklisted bool         `gorm:"not null;default:false"`
	Warnings    []WarningDTO `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserDTO) TableName() string {
	return "users"
}

// WarningDTO is one entry of the warning log. Entries are never deleted; a
// reinstatement only marks them pardoned.
type WarningDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	Seq      int        `gorm:"not null"`
	CauseID  *uuid.UUID `gorm:"type:uuid"`
	Reason   string
	IssuedAt time.Time `gorm:"not null"`
	Pardoned bool      `gorm:"not null;default:false"`
}

func (WarningDTO) TableName() string {
	return "user_warnings"
}

func fromDomain(u *user.User) UserDTO {
	warnings := make([]WarningDTO, 0, len(u.Warnings()))
	for i, w := range u.Warnings() {
		var causeID *uuid.UUID
		if c := w.CauseID(); c != nil {
			raw := c.Bytes()
			causeID = &raw
		}
		warnings = append(warnings, WarningDTO{
			ID:       w.ID().Bytes(),
			UserID:   u.ID().Bytes(),
			Seq:      i,
			CauseID:  causeID,
			Reason:   w.Reason(),
			IssuedAt: w.IssuedAt(),
			Pardoned: w.IsPardoned(),
		})
	}

	return UserDTO{
		ID:          u.ID().Bytes(),
		Name:        u.Name(),
		Role:        int(u.Role()),
		Blacklisted: u.IsBlacklisted(),
		Warnings:    warnings,
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	warnings := make([]user.Warning, 0, len(dto.Warnings))
	for _, w := range dto.Warnings {
		wID, err := kernel.UUIDFromBytes(w.ID[:])
		if err != nil {
			return nil, err
		}

		var causeID *kernel.UUID
		if w.CauseID != nil {
			cID, causeErr := kernel.UUIDFromBytes((*w.CauseID)[:])
			if causeErr != nil {
				return nil, causeErr
			}
			causeID = &cID
		}

		restored, err := user.RestoreWarning(wID, causeID, w.Reason, w.IssuedAt, w.Pardoned)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, restored)
	}

	return user.RestoreUser(id, dto.Name, user.Role(dto.Role), dto.Blacklisted, warnings)
}

// Package accountrepo maps customer accounts to the accounts table. Amounts
// are stored as exact numerics.
package accountrepo

import (
	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountDTO struct {
	OwnerID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Balance         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	LifetimeSpend   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CompletedOrders int             `gorm:"not null;default:0"`
}

func (AccountDTO) TableName() string {
	return "accounts"
}

func fromDomain(a *account.Account) AccountDTO {
	return AccountDTO{
		OwnerID:         a.OwnerID().Bytes(),
		Balance:         a.Balance().Decimal(),
		LifetimeSpend:   a.LifetimeSpend().Decimal(),
		CompletedOrders: a.CompletedOrders(),
	}
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	owner, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(
		owner,
		kernel.NewMoney(dto.Balance),
		kernel.NewMoney(dto.LifetimeSpend),
		dto.CompletedOrders,
	)
}

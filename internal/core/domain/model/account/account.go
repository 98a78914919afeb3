// Package account holds the per-user ledger: spendable balance plus the
// lifetime counters that feed VIP evaluation.
package account

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount")

// Account is keyed by its owner. The balance never goes negative; lifetime
// spend and completed orders only grow, and only when an order closes.
type Account struct {
	ownerID         kernel.UUID
	balance         kernel.Money
	lifetimeSpend   kernel.Money
	completedOrders int

	isConstructed bool
}

// NewAccount opens an empty account.
func NewAccount(ownerID kernel.UUID) (*Account, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}
	return &Account{ownerID: ownerID, isConstructed: true}, nil
}

// RestoreAccount rebuilds an account from storage.
func RestoreAccount(ownerID kernel.UUID, balance, lifetimeSpend kernel.Money, completedOrders int) (*Account, error) {
	a, err := NewAccount(ownerID)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(
		balance.ValidateNonNegative("balance"),
		lifetimeSpend.ValidateNonNegative("lifetime spend"),
		validateCount(completedOrders),
	); err != nil {
		return nil, err
	}

	a.balance = balance
	a.lifetimeSpend = lifetimeSpend
	a.completedOrders = completedOrders
	return a, nil
}

func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

func (a *Account) OwnerID() kernel.UUID { return a.ownerID }

func (a *Account) Balance() kernel.Money { return a.balance }

func (a *Account) LifetimeSpend() kernel.Money { return a.lifetimeSpend }

func (a *Account) CompletedOrders() int { return a.completedOrders }

// Debit charges an order total. It fails with InsufficientFunds and leaves the
// balance untouched when the balance does not cover the amount.
func (a *Account) Debit(amount kernel.Money) error {
	if err := amount.ValidateNonNegative("amount"); err != nil {
		return err
	}
	if a.balance.LessThan(amount) {
		return errs.NewInsufficientFundsError(amount, a.balance)
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// Deposit adds funds. The amount must be positive.
func (a *Account) Deposit(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// Refund returns a previously debited amount in full.
func (a *Account) Refund(amount kernel.Money) error {
	if err := amount.ValidateNonNegative("amount"); err != nil {
		return err
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// RecordCompletedOrder counts a closed order towards VIP eligibility.
func (a *Account) RecordCompletedOrder(total kernel.Money) error {
	if err := total.ValidateNonNegative("total"); err != nil {
		return err
	}
	a.lifetimeSpend = a.lifetimeSpend.Add(total)
	a.completedOrders++
	return nil
}

func (a *Account) Clone() *Account {
	c := *a
	return &c
}

func validateCount(n int) error {
	if n < 0 {
		return errs.NewValueIsOutOfRangeError("completed orders", n, 0, "unbounded")
	}
	return nil
}

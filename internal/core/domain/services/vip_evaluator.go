package services

import (
	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"
)

// VIPEvaluator promotes a Customer to VIP when either
//   - lifetime spend reaches SpendThreshold, or
//   - completed orders reach OrderThreshold with no accepted complaints against them.
//
// Blacklisted customers are never promoted. Warnings do not block promotion;
// demotion is driven by warnings only, see StandingService.
type VIPEvaluator struct {
	spendThreshold kernel.Money
	orderThreshold int
}

func NewVIPEvaluator() VIPEvaluator {
	return VIPEvaluator{
		spendThreshold: kernel.MoneyFromInt(100),
		orderThreshold: 3,
	}
}

// Qualifies reports whether the history meets the promotion rule.
func (e VIPEvaluator) Qualifies(acct *account.Account, acceptedComplaints int) bool {
	if acct.LifetimeSpend().GreaterThanOrEqual(e.spendThreshold) {
		return true
	}
	return acct.CompletedOrders() >= e.orderThreshold && acceptedComplaints == 0
}

// Evaluate promotes u when eligible and reports whether the role changed.
// Re-evaluating a VIP or a staff member is a no-op.
func (e VIPEvaluator) Evaluate(u *user.User, acct *account.Account, acceptedComplaints int) (bool, error) {
	if err := u.Validate(); err != nil {
		return false, err
	}
	if err := acct.Validate(); err != nil {
		return false, err
	}
	if !acct.OwnerID().IsEqual(u.ID()) {
		return false, errs.NewValueIsInvalidError("account belongs to another user")
	}

	if u.Role() != user.Customer || u.IsBlacklisted() {
		return false, nil
	}
	if !e.Qualifies(acct, acceptedComplaints) {
		return false, nil
	}

	if err := u.Promote(); err != nil {
		return false, err
	}
	return true, nil
}

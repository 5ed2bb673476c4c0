// Package insights derives goal hints and simple aggregates from a reconciled
// account list. Everything here is pure and deterministic.
package insights

import "github.com/guidewell/guidewell-server/internal/models"

// InferGoals derives candidate goal tags from the shape of the account set.
// Emission order is fixed and no tag appears twice; balances are never
// inspected.
func InferGoals(accounts []models.Account) []models.Goal {
	goals := []models.Goal{}
	if anyAccount(accounts, func(a models.Account) bool { return a.IsDebt() }) {
		goals = append(goals, models.GoalPayDownDebt)
	}
	if anyAccount(accounts, func(a models.Account) bool { return a.Type == models.AccountTypeSavings }) {
		goals = append(goals, models.GoalSaveBigGoal)
	}
	if anyAccount(accounts, func(a models.Account) bool { return a.Type == models.AccountTypeInvestment }) {
		goals = append(goals, models.GoalStartInvesting)
	}
	return goals
}

// TotalDebt sums balances over loan and credit card accounts.
func TotalDebt(accounts []models.Account) float64 {
	var total float64
	for _, a := range accounts {
		if a.IsDebt() {
			total += a.Balance
		}
	}
	return total
}

// PrimarySavingsGoal returns progress toward the first savings account that
// carries a goal target, or nil when no such account exists. Progress is
// floored to whole percent and clamped to [0,100].
func PrimarySavingsGoal(accounts []models.Account) *models.SavingsGoal {
	for _, a := range accounts {
		if a.Type != models.AccountTypeSavings || a.GoalTarget == nil {
			continue
		}
		target := *a.GoalTarget
		if target == 0 {
			return nil
		}
		pct := int(a.Balance / target * 100)
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		return &models.SavingsGoal{
			Name:    a.Name,
			Balance: a.Balance,
			Target:  target,
			Percent: pct,
		}
	}
	return nil
}

func anyAccount(accounts []models.Account, match func(models.Account) bool) bool {
	for _, a := range accounts {
		if match(a) {
			return true
		}
	}
	return false
}

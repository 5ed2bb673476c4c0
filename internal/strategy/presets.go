package strategy

import "github.com/guidewell/guidewell-server/internal/models"

// Presets returns the built-in strategy starting points shown to users.
func Presets() []models.StrategyPreset {
	return []models.StrategyPreset{
		{
			ID:                "debt_snowball",
			Name:              "Debt Snowball",
			Description:       "Pay off smallest debts first to build momentum",
			DefaultTimeline:   24,
			DefaultAllocation: models.Allocation{Debt: 80, Savings: 10, Investment: 10},
			RiskLevel:         models.RiskLow,
		},
		{
			ID:                "emergency_first",
			Name:              "Emergency Fund First",
			Description:       "Build 3-6 months of expenses before investing",
			DefaultTimeline:   12,
			DefaultAllocation: models.Allocation{Debt: 20, Savings: 70, Investment: 10},
			RiskLevel:         models.RiskLow,
		},
		{
			ID:                "balanced_growth",
			Name:              "Balanced Growth",
			Description:       "Balance debt payoff with long-term investing",
			DefaultTimeline:   36,
			DefaultAllocation: models.Allocation{Debt: 40, Savings: 20, Investment: 40},
			RiskLevel:         models.RiskMedium,
		},
		{
			ID:                "aggressive_invest",
			Name:              "Aggressive Investing",
			Description:       "Minimize debt payments, maximize investment growth",
			DefaultTimeline:   60,
			DefaultAllocation: models.Allocation{Debt: 20, Savings: 10, Investment: 70},
			RiskLevel:         models.RiskHigh,
		},
	}
}

package strategy

import (
	"fmt"

	"github.com/guidewell/guidewell-server/internal/models"
)

// Flat annual growth rates by risk tier. The projection is an educational
// scenario, not a financial model: growth applies once to the aggregate
// contribution and the monthly breakdown never compounds.
const (
	growthRateLow    = 0.03
	growthRateMedium = 0.05
	growthRateHigh   = 0.08
)

// GrowthRateFor returns the flat growth-rate constant for a risk tier.
// Unrecognized tiers fall back to the low rate.
func GrowthRateFor(level models.RiskLevel) float64 {
	switch level {
	case models.RiskHigh:
		return growthRateHigh
	case models.RiskMedium:
		return growthRateMedium
	default:
		return growthRateLow
	}
}

// CalculateStrategyResult projects a validated config into totals and a
// month-by-month contribution split. The caller is expected to have
// normalized the allocation already; the projector does not re-check that
// the split sums to 100.
func CalculateStrategyResult(config models.StrategyConfig) (models.StrategyResult, error) {
	if config.Timeline <= 0 {
		return models.StrategyResult{}, fmt.Errorf("timeline must be positive, got %d", config.Timeline)
	}
	if config.MonthlyContribution < 0 {
		return models.StrategyResult{}, fmt.Errorf("monthly contribution must not be negative, got %.2f", config.MonthlyContribution)
	}

	monthly := config.MonthlyContribution
	totalContribution := monthly * float64(config.Timeline)
	projectedValue := totalContribution * (1 + GrowthRateFor(config.RiskLevel))

	breakdown := make([]models.MonthlyEntry, config.Timeline)
	for i := range breakdown {
		breakdown[i] = models.MonthlyEntry{
			Month:      i + 1,
			Debt:       monthly * config.Allocation.Debt / 100,
			Savings:    monthly * config.Allocation.Savings / 100,
			Investment: monthly * config.Allocation.Investment / 100,
			Total:      monthly,
		}
	}

	return models.StrategyResult{
		TotalContribution: totalContribution,
		ProjectedValue:    projectedValue,
		Growth:            projectedValue - totalContribution,
		MonthlyBreakdown:  breakdown,
	}, nil
}

package strategy

import (
	"math"

	"github.com/guidewell/guidewell-server/internal/models"
)

// allocationTolerance absorbs small floating point errors when checking that
// the three components add up to 100.
const allocationTolerance = 0.01

// ValidateAllocation reports whether the split sums to 100 percent.
func ValidateAllocation(a models.Allocation) bool {
	return math.Abs(a.Sum()-100) < allocationTolerance
}

// NormalizeAllocation rescales each component so the split sums to 100. An
// all-zero allocation becomes the fixed even split {33.33, 33.33, 33.34};
// the extra 0.01 goes to investment so the result sums to exactly 100.00.
func NormalizeAllocation(a models.Allocation) models.Allocation {
	total := a.Sum()
	if total == 0 {
		return models.Allocation{Debt: 33.33, Savings: 33.33, Investment: 33.34}
	}
	return models.Allocation{
		Debt:       a.Debt / total * 100,
		Savings:    a.Savings / total * 100,
		Investment: a.Investment / total * 100,
	}
}

// RecommendedAllocation returns the fixed preset split for a risk tolerance.
// Every preset already sums to 100 and needs no normalization.
func RecommendedAllocation(tolerance models.RiskTolerance) models.Allocation {
	switch tolerance {
	case models.ToleranceConservative:
		return models.Allocation{Debt: 50, Savings: 30, Investment: 20}
	case models.ToleranceAggressive:
		return models.Allocation{Debt: 30, Savings: 10, Investment: 60}
	case models.ToleranceModerate:
		return models.Allocation{Debt: 40, Savings: 20, Investment: 40}
	default:
		return models.Allocation{Debt: 40, Savings: 20, Investment: 40}
	}
}

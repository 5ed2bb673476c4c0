package models

// RiskLevel drives the flat growth-rate constant used by the projector.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskTolerance is the onboarding-level risk appetite used to pick a
// recommended allocation. It is a different axis than RiskLevel.
type RiskTolerance string

const (
	ToleranceConservative RiskTolerance = "conservative"
	ToleranceModerate     RiskTolerance = "moderate"
	ToleranceAggressive   RiskTolerance = "aggressive"
)

// Allocation is a three-way percentage split of a monthly contribution.
type Allocation struct {
	Debt       float64 `json:"debt"`
	Savings    float64 `json:"savings"`
	Investment float64 `json:"investment"`
}

// Sum returns the total of the three components.
func (a Allocation) Sum() float64 {
	return a.Debt + a.Savings + a.Investment
}

// StrategyConfig is a user-editable projection input. Recomputed results are
// ephemeral; the config owns no external resources.
type StrategyConfig struct {
	Name                string     `json:"name"`
	Timeline            int        `json:"timeline"` // months
	MonthlyContribution float64    `json:"monthlyContribution"`
	Allocation          Allocation `json:"allocation"`
	RiskLevel           RiskLevel  `json:"riskLevel"`
}

// MonthlyEntry is the per-month split of the contribution. Entries are
// identical in shape across all months; the breakdown does not compound.
type MonthlyEntry struct {
	Month      int     `json:"month"`
	Debt       float64 `json:"debt"`
	Savings    float64 `json:"savings"`
	Investment float64 `json:"investment"`
	Total      float64 `json:"total"`
}

// StrategyResult is the projector output.
type StrategyResult struct {
	TotalContribution float64        `json:"totalContribution"`
	ProjectedValue    float64        `json:"projectedValue"`
	Growth            float64        `json:"growth"`
	MonthlyBreakdown  []MonthlyEntry `json:"monthlyBreakdown"`
}

// StrategyPreset is a named starting point for a strategy configuration.
type StrategyPreset struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	DefaultTimeline   int        `json:"defaultTimeline"`
	DefaultAllocation Allocation `json:"defaultAllocation"`
	RiskLevel         RiskLevel  `json:"riskLevel"`
}

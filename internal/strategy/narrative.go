package strategy

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/guidewell/guidewell-server/internal/models"
)

const disclaimer = "Remember, these are educational scenarios only and actual results may vary significantly based on market conditions, fees, and other factors."

// GenerateNarrative renders a strategy result into display text. Output is
// read by people, never parsed back.
func GenerateNarrative(config models.StrategyConfig, result models.StrategyResult) string {
	years := math.Round(float64(config.Timeline)/12*10) / 10

	growthPct := 0.0
	if result.TotalContribution != 0 {
		growthPct = result.Growth / result.TotalContribution * 100
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This scenario shows how the %s strategy could work over %s years. ",
		config.Name, formatNumber(years))
	fmt.Fprintf(&b, "With a monthly contribution of $%s, you might allocate %s%% to debt payoff, %s%% to savings, and %s%% to investments. ",
		formatCurrency(config.MonthlyContribution),
		formatNumber(config.Allocation.Debt),
		formatNumber(config.Allocation.Savings),
		formatNumber(config.Allocation.Investment))
	fmt.Fprintf(&b, "This %s could potentially grow your total contributions of $%s to approximately $%s, representing a %.1f%% growth of $%s. ",
		riskDescription(config.RiskLevel),
		formatCurrency(result.TotalContribution),
		formatCurrency(result.ProjectedValue),
		growthPct,
		formatCurrency(result.Growth))
	b.WriteString(disclaimer)
	return b.String()
}

// GenerateRiskWarning returns the caveat line shown next to a risk tier.
func GenerateRiskWarning(level models.RiskLevel) string {
	switch level {
	case models.RiskLow:
		return "Lower risk strategies typically offer more stable but potentially lower returns."
	case models.RiskMedium:
		return "Medium risk strategies balance growth potential with stability."
	case models.RiskHigh:
		return "Higher risk strategies may offer greater growth potential but with increased volatility."
	default:
		return "All investments carry risk and past performance does not guarantee future results."
	}
}

func riskDescription(level models.RiskLevel) string {
	switch level {
	case models.RiskLow:
		return "conservative approach"
	case models.RiskHigh:
		return "aggressive approach"
	default:
		return "balanced approach"
	}
}

// formatCurrency renders an amount with thousands separators and at most two
// decimal places, e.g. 1234.5 -> "1,234.5".
func formatCurrency(v float64) string {
	s := decimal.NewFromFloat(v).Round(2).String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	grouped := groupThousands(intPart)
	if hasFrac {
		grouped += "." + fracPart
	}
	if neg {
		grouped = "-" + grouped
	}
	return grouped
}

// formatNumber prints a float without trailing zeros, e.g. 1.0 -> "1".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guidewell/guidewell-server/internal/models"
)

func TestValidateAllocation(t *testing.T) {
	tests := []struct {
		name       string
		allocation models.Allocation
		want       bool
	}{
		{"exact hundred", models.Allocation{Debt: 40, Savings: 20, Investment: 40}, true},
		{"off by one", models.Allocation{Debt: 40, Savings: 20, Investment: 41}, false},
		{"within tolerance", models.Allocation{Debt: 33.33, Savings: 33.33, Investment: 33.335}, true},
		{"all zero", models.Allocation{}, false},
		{"single bucket", models.Allocation{Investment: 100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateAllocation(tt.allocation))
		})
	}
}

func TestNormalizeAllocationScalesToHundred(t *testing.T) {
	tests := []struct {
		name       string
		allocation models.Allocation
	}{
		{"already valid", models.Allocation{Debt: 40, Savings: 20, Investment: 40}},
		{"undersized", models.Allocation{Debt: 1, Savings: 2, Investment: 3}},
		{"oversized", models.Allocation{Debt: 120, Savings: 60, Investment: 20}},
		{"tiny values", models.Allocation{Debt: 0.001, Savings: 0.002, Investment: 0.003}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAllocation(tt.allocation)
			assert.InDelta(t, 100, got.Sum(), 1e-9)
		})
	}
}

func TestNormalizeAllocationZeroSplit(t *testing.T) {
	got := NormalizeAllocation(models.Allocation{})

	assert.Equal(t, models.Allocation{Debt: 33.33, Savings: 33.33, Investment: 33.34}, got)
	assert.Equal(t, 100.0, got.Sum())
}

func TestNormalizeAllocationPreservesProportions(t *testing.T) {
	got := NormalizeAllocation(models.Allocation{Debt: 1, Savings: 1, Investment: 2})

	assert.InDelta(t, 25, got.Debt, 1e-9)
	assert.InDelta(t, 25, got.Savings, 1e-9)
	assert.InDelta(t, 50, got.Investment, 1e-9)
}

func TestRecommendedAllocation(t *testing.T) {
	tests := []struct {
		tolerance models.RiskTolerance
		want      models.Allocation
	}{
		{models.ToleranceConservative, models.Allocation{Debt: 50, Savings: 30, Investment: 20}},
		{models.ToleranceModerate, models.Allocation{Debt: 40, Savings: 20, Investment: 40}},
		{models.ToleranceAggressive, models.Allocation{Debt: 30, Savings: 10, Investment: 60}},
		{models.RiskTolerance("unknown"), models.Allocation{Debt: 40, Savings: 20, Investment: 40}},
	}
	for _, tt := range tests {
		t.Run(string(tt.tolerance), func(t *testing.T) {
			got := RecommendedAllocation(tt.tolerance)
			assert.Equal(t, tt.want, got)
			assert.True(t, ValidateAllocation(got), "preset must sum to 100")
		})
	}
}

func TestNormalizeThenValidate(t *testing.T) {
	inputs := []models.Allocation{
		{Debt: 7, Savings: 13, Investment: 29},
		{Debt: 0.5, Savings: 0, Investment: 0},
		{Debt: 99, Savings: 99, Investment: 99},
	}
	for _, in := range inputs {
		got := NormalizeAllocation(in)
		assert.True(t, ValidateAllocation(got), "normalized %+v should validate, got %+v", in, got)
		assert.False(t, math.IsNaN(got.Sum()))
	}
}

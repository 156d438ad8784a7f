package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculatePPN(t *testing.T) {
	got := CalculatePPN(decimal.NewFromInt(1_000_000), decimal.NewFromInt(11))
	assert.True(t, got.Equal(decimal.NewFromInt(110_000)))
}

func TestCalculatePPh21PositiveAboveThreshold(t *testing.T) {
	annualSalary := decimal.NewFromInt(10_000_000).Mul(decimal.NewFromInt(12))
	ptkp := PTKPAmount("single", 0)
	got := CalculatePPh21(annualSalary, ptkp)
	assert.True(t, got.Sign() > 0, "expected positive tax for salary above PTKP, got %s", got)
}

func TestCalculatePPh21ZeroBelowThreshold(t *testing.T) {
	got := CalculatePPh21(decimal.NewFromInt(40_000_000), PTKPAmount("single", 0))
	assert.True(t, got.IsZero())
}

func TestCalculatePPh21BracketBoundary(t *testing.T) {
	// Exactly at the first bracket ceiling: entire amount taxed at 5%.
	got := CalculatePPh21(decimal.NewFromInt(60_000_000), decimal.Zero)
	assert.True(t, got.Equal(decimal.NewFromInt(3_000_000)), "got %s", got)
}

func TestPTKPAmount(t *testing.T) {
	cases := []struct {
		status     string
		dependents int
		want       decimal.Decimal
	}{
		{"single", 0, decimal.NewFromInt(54_000_000)},
		{"married", 0, decimal.NewFromInt(58_500_000)},
		{"married", 1, decimal.NewFromInt(63_000_000)},
		{"married", 2, decimal.NewFromInt(67_500_000)},
		{"married", 5, decimal.NewFromInt(72_000_000)},
	}
	for _, tc := range cases {
		got := PTKPAmount(tc.status, tc.dependents)
		assert.Truef(t, got.Equal(tc.want), "PTKPAmount(%s, %d) = %s, want %s", tc.status, tc.dependents, got, tc.want)
	}
}

func TestCalculateTaxPenaltyNotCeiled(t *testing.T) {
	// 15 days late is half a month: 2% * 0.5 = 1% of the tax amount.
	got := CalculateTaxPenalty(decimal.NewFromInt(1_000_000), 15)
	assert.True(t, got.Equal(decimal.NewFromInt(10_000)), "got %s", got)
}

func TestValidateNPWP(t *testing.T) {
	assert.True(t, ValidateNPWP("01.234.567.8-901.234"), "expected formatted 15-digit NPWP to validate")
	assert.True(t, ValidateNPWP("012345678901234"), "expected unformatted 15-digit NPWP to validate")
	assert.False(t, ValidateNPWP("01.234.567.8"), "expected short NPWP to be rejected")
}

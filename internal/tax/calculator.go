// Package tax implements the Indonesian tax calculator (PPN, PPh21-29,
// PBB), PTKP lookup, and tax configuration storage — grounded on
// original_source's services/indonesian-tax/src/services/tax_calculator.rs.
package tax

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func percentOf(base, ratePercent decimal.Decimal) decimal.Decimal {
	return base.Mul(ratePercent).Div(hundred)
}

// CalculatePPN computes value-added tax on a base amount at the given
// percentage rate (11% as of the 2022 Harmonized Tax Law).
func CalculatePPN(baseAmount, ratePercent decimal.Decimal) decimal.Decimal {
	return percentOf(baseAmount, ratePercent)
}

// CalculatePPh22 computes import/procurement withholding tax.
func CalculatePPh22(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return percentOf(amount, ratePercent)
}

// CalculatePPh23 computes service-fee withholding tax.
func CalculatePPh23(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return percentOf(amount, ratePercent)
}

// CalculatePPh25 computes monthly income tax installments.
func CalculatePPh25(monthlyIncome, ratePercent decimal.Decimal) decimal.Decimal {
	return percentOf(monthlyIncome, ratePercent)
}

// pph21Bracket is one progressive income-tax bracket: rate applies to
// the portion of taxable income up to ceiling above the previous
// bracket's ceiling (ceiling of zero means unbounded).
type pph21Bracket struct {
	ceiling decimal.Decimal
	rate    decimal.Decimal
}

// pph21Brackets are the 2024 progressive PPh21 brackets.
var pph21Brackets = []pph21Bracket{
	{ceiling: decimal.NewFromInt(60_000_000), rate: decimal.NewFromInt(5)},
	{ceiling: decimal.NewFromInt(250_000_000), rate: decimal.NewFromInt(15)},
	{ceiling: decimal.NewFromInt(500_000_000), rate: decimal.NewFromInt(25)},
	{ceiling: decimal.Decimal{}, rate: decimal.NewFromInt(30)}, // unbounded
}

// applyProgressiveRates taxes income through each bracket in turn,
// matching apply_progressive_rates in tax_calculator.rs bracket-width
// by bracket-width (60M, then 190M, then 250M, then unbounded).
func applyProgressiveRates(income decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	remaining := income
	previousCeiling := decimal.Zero

	for _, bracket := range pph21Brackets {
		if remaining.Sign() <= 0 {
			break
		}
		var bracketWidth decimal.Decimal
		if bracket.ceiling.IsZero() {
			bracketWidth = remaining
		} else {
			bracketWidth = decimal.Min(remaining, bracket.ceiling.Sub(previousCeiling))
		}
		tax = tax.Add(percentOf(bracketWidth, bracket.rate))
		remaining = remaining.Sub(bracketWidth)
		previousCeiling = bracket.ceiling
	}
	return tax
}

// CalculatePPh21 computes progressive income tax on annual taxable
// income (gross income minus PTKP), per Get PTKPAmount for the
// non-taxable threshold.
func CalculatePPh21(grossIncome, ptkp decimal.Decimal) decimal.Decimal {
	taxableIncome := decimal.Max(grossIncome.Sub(ptkp), decimal.Zero)
	if taxableIncome.Sign() <= 0 {
		return decimal.Zero
	}
	return applyProgressiveRates(taxableIncome)
}

// CalculatePPh29 computes the annual tax shortfall still owed after
// crediting PPh25 installments already paid during the year.
func CalculatePPh29(annualIncome, totalPPh25Paid decimal.Decimal) decimal.Decimal {
	annualTax := applyProgressiveRates(annualIncome)
	return decimal.Max(annualTax.Sub(totalPPh25Paid), decimal.Zero)
}

// CalculatePBB computes land and building tax on an assessed property value.
func CalculatePBB(propertyValue, ratePercent decimal.Decimal) decimal.Decimal {
	return percentOf(propertyValue, ratePercent)
}

// PTKPAmount looks up the non-taxable income threshold (Penghasilan
// Tidak Kena Pajak) by marital status and dependent count, per
// tax_calculator.rs's get_ptkp_amount.
func PTKPAmount(maritalStatus string, dependents int) decimal.Decimal {
	switch {
	case maritalStatus == "married" && dependents >= 3:
		return decimal.NewFromInt(72_000_000)
	case maritalStatus == "married" && dependents == 2:
		return decimal.NewFromInt(67_500_000)
	case maritalStatus == "married" && dependents == 1:
		return decimal.NewFromInt(63_000_000)
	case maritalStatus == "married" && dependents == 0:
		return decimal.NewFromInt(58_500_000)
	default:
		return decimal.NewFromInt(54_000_000)
	}
}

// CalculateTaxPenalty computes the 2%-per-month-late penalty, deliberately
// NOT ceiling the elapsed-months fraction — see DESIGN.md's Open Question
// decision on this — matching tax_calculator.rs's plain division.
func CalculateTaxPenalty(taxAmount decimal.Decimal, daysLate int) decimal.Decimal {
	monthlyRate := decimal.NewFromFloat(0.02)
	monthsLate := decimal.NewFromInt(int64(daysLate)).Div(decimal.NewFromInt(30))
	return taxAmount.Mul(monthlyRate).Mul(monthsLate)
}

package reporting

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestClassifyBalanceSheetLines(t *testing.T) {
	cash := uuid.New()
	payable := uuid.New()
	capital := uuid.New()

	accounts := []accountDTO{
		{ID: cash, Type: "ASSET"},
		{ID: payable, Type: "LIABILITY"},
		{ID: capital, Type: "EQUITY"},
	}
	lines := []trialBalanceLineDTO{
		{AccountID: cash, DebitBalance: decimal.NewFromInt(1000), CreditBalance: decimal.Zero},
		{AccountID: payable, DebitBalance: decimal.Zero, CreditBalance: decimal.NewFromInt(400)},
		{AccountID: capital, DebitBalance: decimal.Zero, CreditBalance: decimal.NewFromInt(600)},
	}

	assets, liabilities, equity := classifyBalanceSheetLines(accounts, lines)
	if !assets.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("assets = %s, want 1000", assets)
	}
	if !liabilities.Equal(decimal.NewFromInt(400)) {
		t.Errorf("liabilities = %s, want 400", liabilities)
	}
	if !equity.Equal(decimal.NewFromInt(600)) {
		t.Errorf("equity = %s, want 600", equity)
	}
	// The fundamental accounting equation must hold.
	if !assets.Equal(liabilities.Add(equity)) {
		t.Errorf("assets (%s) != liabilities + equity (%s)", assets, liabilities.Add(equity))
	}
}

func TestClassifyBalanceSheetLinesIgnoresUnknownAccounts(t *testing.T) {
	unknown := uuid.New()
	assets, liabilities, equity := classifyBalanceSheetLines(nil, []trialBalanceLineDTO{
		{AccountID: unknown, DebitBalance: decimal.NewFromInt(500), CreditBalance: decimal.Zero},
	})
	if !assets.IsZero() || !liabilities.IsZero() || !equity.IsZero() {
		t.Error("expected an unclassified account to contribute nothing to any bucket")
	}
}

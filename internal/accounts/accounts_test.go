package accounts

import "testing"

func TestNormalBalanceFor(t *testing.T) {
	cases := map[AccountType]NormalBalance{
		TypeAsset:     BalanceDebit,
		TypeExpense:   BalanceDebit,
		TypeLiability: BalanceCredit,
		TypeEquity:    BalanceCredit,
		TypeRevenue:   BalanceCredit,
	}
	for accountType, want := range cases {
		if got := NormalBalanceFor(accountType); got != want {
			t.Errorf("NormalBalanceFor(%s) = %s, want %s", accountType, got, want)
		}
	}
}

func TestStandardTemplateCoversAllTypes(t *testing.T) {
	seen := map[AccountType]bool{}
	for _, entry := range standardTemplate {
		seen[entry.Type] = true
	}
	for _, want := range []AccountType{TypeAsset, TypeLiability, TypeEquity, TypeRevenue, TypeExpense} {
		if !seen[want] {
			t.Errorf("standard template is missing an account of type %s", want)
		}
	}
}

package accounts

// standardTemplate is the standard Indonesian chart-of-accounts seed:
// 1000s Assets, 2000s Liabilities, 3000s Equity, 4000s Revenue, 5000s
// Cost of sales, 6000s Operating and other expense, mirroring the account
// ranges implied by the original platform's chart-of-accounts page.
var standardTemplate = []struct {
	Code string
	Name string
	Type AccountType
}{
	{"1000", "Kas dan Bank", TypeAsset},
	{"1100", "Piutang Usaha", TypeAsset},
	{"1200", "Persediaan", TypeAsset},
	{"1500", "Aset Tetap", TypeAsset},
	{"2000", "Utang Usaha", TypeLiability},
	{"2100", "Utang Pajak", TypeLiability},
	{"2500", "Utang Jangka Panjang", TypeLiability},
	{"3000", "Modal Disetor", TypeEquity},
	{"3900", "Laba Ditahan", TypeEquity},
	{"4000", "Pendapatan Usaha", TypeRevenue},
	{"4900", "Pendapatan Lain-lain", TypeRevenue},
	{"5000", "Beban Pokok Penjualan", TypeExpense},
	{"6100", "Beban Operasional", TypeExpense},
	{"6900", "Beban Lain-lain", TypeExpense},
}

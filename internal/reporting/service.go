package reporting

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/massehanto/saku/pkg/apperror"
	"github.com/massehanto/saku/pkg/config"
)

// Service composes reports by calling the ledger, accounts, payables,
// and receivables services concurrently. It deliberately uses plain
// goroutines and a sync.WaitGroup rather than golang.org/x/sync/errgroup —
// no repo in the example pack imports errgroup, so this stays grounded
// in what the corpus actually does (see DESIGN.md).
type Service struct {
	accounts    *peerClient
	ledger      *peerClient
	payables    *peerClient
	receivables *peerClient
	log         *zap.Logger
}

func NewService(cfg config.ServiceConfig, log *zap.Logger) *Service {
	return &Service{
		accounts:    newPeerClient(cfg.PeerURLs["accounts"]),
		ledger:      newPeerClient(cfg.PeerURLs["ledger"]),
		payables:    newPeerClient(cfg.PeerURLs["payables"]),
		receivables: newPeerClient(cfg.PeerURLs["receivables"]),
		log:         log.Named("reporting.service"),
	}
}

// fetchAccountsAndTrialBalance fans out to the accounts service (chart of
// accounts, for account types) and the ledger service (netted trial
// balance as of a date) concurrently — the shared fetch every report in
// this file builds on.
func (s *Service) fetchAccountsAndTrialBalance(ctx context.Context, companyID, userID uuid.UUID, asOf time.Time) ([]accountDTO, trialBalanceReportDTO, error) {
	var accounts []accountDTO
	var tb trialBalanceReportDTO
	var accountsErr, ledgerErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		accountsErr = s.accounts.getJSON(ctx, "/accounts", companyID, userID, &accounts)
	}()
	go func() {
		defer wg.Done()
		ledgerErr = s.ledger.getJSON(ctx, "/trial-balance?as_of_date="+asOf.Format("2006-01-02"), companyID, userID, &tb)
	}()
	wg.Wait()

	if accountsErr != nil {
		return nil, trialBalanceReportDTO{}, apperror.Dependency("accounts", accountsErr)
	}
	if ledgerErr != nil {
		return nil, trialBalanceReportDTO{}, apperror.Dependency("ledger", ledgerErr)
	}
	return accounts, tb, nil
}

// TrialBalanceReport is the netted trial balance as of a date, passed
// through from the ledger service's own netting + is_balanced check.
type TrialBalanceReport struct {
	CompanyID   uuid.UUID             `json:"company_id"`
	AsOfDate    time.Time             `json:"as_of_date"`
	Lines       []trialBalanceLineDTO `json:"lines"`
	IsBalanced  bool                  `json:"is_balanced"`
	GeneratedAt time.Time             `json:"generated_at"`
}

func (s *Service) TrialBalance(ctx context.Context, companyID, userID uuid.UUID, asOfDate time.Time) (*TrialBalanceReport, error) {
	var tb trialBalanceReportDTO
	if err := s.ledger.getJSON(ctx, "/trial-balance?as_of_date="+asOfDate.Format("2006-01-02"), companyID, userID, &tb); err != nil {
		return nil, apperror.Dependency("ledger", err)
	}
	return &TrialBalanceReport{
		CompanyID: companyID, AsOfDate: asOfDate, GeneratedAt: time.Now().UTC(),
		Lines: tb.Lines, IsBalanced: tb.IsBalanced,
	}, nil
}

// BalanceSheetReport groups account balances by asset/liability/equity.
type BalanceSheetReport struct {
	CompanyID   uuid.UUID       `json:"company_id"`
	AsOfDate    time.Time       `json:"as_of_date"`
	TotalAssets decimal.Decimal `json:"total_assets"`
	TotalLiab   decimal.Decimal `json:"total_liabilities"`
	TotalEquity decimal.Decimal `json:"total_equity"`
	IsBalanced  bool            `json:"is_balanced"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// GenerateBalanceSheet fans out to the accounts service (chart of
// accounts, for account types) and the ledger service (trial balance,
// for posted balances) concurrently, then classifies each account's net
// balance by its normal side into assets/liabilities/equity. IsBalanced
// reports whether total assets reconcile to total liabilities + equity —
// the report is still returned, with IsBalanced false, when they don't.
func (s *Service) GenerateBalanceSheet(ctx context.Context, companyID, userID uuid.UUID, asOfDate time.Time) (*BalanceSheetReport, error) {
	accounts, tb, err := s.fetchAccountsAndTrialBalance(ctx, companyID, userID, asOfDate)
	if err != nil {
		return nil, err
	}

	assets, liab, equity := classifyBalanceSheetLines(accounts, tb.Lines)
	return &BalanceSheetReport{
		CompanyID: companyID, AsOfDate: asOfDate, GeneratedAt: time.Now().UTC(),
		TotalAssets: assets, TotalLiab: liab, TotalEquity: equity,
		IsBalanced: assets.Equal(liab.Add(equity)),
	}, nil
}

// classifyBalanceSheetLines sums each trial-balance line into
// assets/liabilities/equity by its account's normal-balance side:
// assets keep their natural debit-positive sign, while liabilities and
// equity (both normally credit-balance) are flipped so their totals
// read positive.
func classifyBalanceSheetLines(accounts []accountDTO, lines []trialBalanceLineDTO) (assets, liabilities, equity decimal.Decimal) {
	accountTypes := make(map[uuid.UUID]string, len(accounts))
	for _, a := range accounts {
		accountTypes[a.ID] = a.Type
	}

	assets, liabilities, equity = decimal.Zero, decimal.Zero, decimal.Zero
	for _, line := range lines {
		net := line.DebitBalance.Sub(line.CreditBalance)
		switch accountTypes[line.AccountID] {
		case "ASSET":
			assets = assets.Add(net)
		case "LIABILITY":
			liabilities = liabilities.Sub(net)
		case "EQUITY":
			equity = equity.Sub(net)
		}
	}
	return assets, liabilities, equity
}

// IncomeStatementReport nets revenue against expense for a date range,
// reporting both GrossProfit (revenue less the cost-of-sales subsection)
// and NetIncome (revenue less every expense account).
type IncomeStatementReport struct {
	CompanyID    uuid.UUID       `json:"company_id"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	CostOfSales  decimal.Decimal `json:"cost_of_sales"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetIncome    decimal.Decimal `json:"net_income"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// costOfSalesCodePrefix is the Indonesian chart-of-accounts convention
// this platform follows: 5xxx accounts are cost-of-sales, 6xxx+ is
// operating expense. Accounts outside this numbering still count toward
// TotalExpense and NetIncome, just not toward the gross-profit subsection.
const costOfSalesCodePrefix = "5"

// incomeStatementDetail computes the income statement for [startDate,
// endDate] and also returns the chart of accounts and each REVENUE/
// EXPENSE account's own net contribution, so GenerateComparative can
// diff them per account without a second fan-out.
func (s *Service) incomeStatementDetail(ctx context.Context, companyID, userID uuid.UUID, startDate, endDate time.Time) (*IncomeStatementReport, []accountDTO, map[uuid.UUID]decimal.Decimal, error) {
	accounts, tb, err := s.fetchAccountsAndTrialBalance(ctx, companyID, userID, endDate)
	if err != nil {
		return nil, nil, nil, err
	}

	accountByID := make(map[uuid.UUID]accountDTO, len(accounts))
	for _, a := range accounts {
		accountByID[a.ID] = a
	}

	nets := make(map[uuid.UUID]decimal.Decimal, len(tb.Lines))
	report := &IncomeStatementReport{CompanyID: companyID, StartDate: startDate, EndDate: endDate, GeneratedAt: time.Now().UTC(),
		TotalRevenue: decimal.Zero, CostOfSales: decimal.Zero, TotalExpense: decimal.Zero}
	for _, line := range tb.Lines {
		account := accountByID[line.AccountID]
		switch account.Type {
		case "REVENUE":
			net := line.CreditBalance.Sub(line.DebitBalance)
			nets[line.AccountID] = net
			report.TotalRevenue = report.TotalRevenue.Add(net)
		case "EXPENSE":
			net := line.DebitBalance.Sub(line.CreditBalance)
			nets[line.AccountID] = net
			report.TotalExpense = report.TotalExpense.Add(net)
			if strings.HasPrefix(account.Code, costOfSalesCodePrefix) {
				report.CostOfSales = report.CostOfSales.Add(net)
			}
		}
	}
	report.GrossProfit = report.TotalRevenue.Sub(report.CostOfSales)
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpense)
	return report, accounts, nets, nil
}

func (s *Service) GenerateIncomeStatement(ctx context.Context, companyID, userID uuid.UUID, startDate, endDate time.Time) (*IncomeStatementReport, error) {
	report, _, _, err := s.incomeStatementDetail(ctx, companyID, userID, startDate, endDate)
	return report, err
}

// ComparativeLine is one REVENUE or EXPENSE account's movement between
// two income-statement periods.
type ComparativeLine struct {
	AccountID     uuid.UUID       `json:"account_id"`
	AccountCode   string          `json:"account_code"`
	AccountName   string          `json:"account_name"`
	Current       decimal.Decimal  `json:"current"`
	Prior         decimal.Decimal  `json:"prior"`
	Delta         decimal.Decimal  `json:"delta"`
	PercentChange *decimal.Decimal `json:"percent_change"`
}

// ComparativeReport runs two income statements and diffs them per
// account; percentChange is null, not infinity, when the prior value is
// zero — spec.md §4.7.
type ComparativeReport struct {
	CompanyID        uuid.UUID         `json:"company_id"`
	CurrentPeriod    string            `json:"current_period"`
	PriorPeriod      string            `json:"prior_period"`
	Lines            []ComparativeLine `json:"lines"`
	CurrentNetIncome decimal.Decimal   `json:"current_net_income"`
	PriorNetIncome   decimal.Decimal   `json:"prior_net_income"`
	GeneratedAt      time.Time         `json:"generated_at"`
}

func formatPeriod(start, end time.Time) string {
	return start.Format("2006-01-02") + ".." + end.Format("2006-01-02")
}

// GenerateComparative runs the current and prior income statements
// concurrently, then emits a per-account delta and percent-change row
// for every REVENUE or EXPENSE account either period touched.
func (s *Service) GenerateComparative(ctx context.Context, companyID, userID uuid.UUID, currentEnd, priorEnd time.Time) (*ComparativeReport, error) {
	currentStart := time.Date(currentEnd.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	priorStart := time.Date(priorEnd.Year(), 1, 1, 0, 0, 0, 0, time.UTC)

	var current, prior *IncomeStatementReport
	var currentAccounts, priorAccounts []accountDTO
	var currentNets, priorNets map[uuid.UUID]decimal.Decimal
	var currentErr, priorErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentAccounts, currentNets, currentErr = s.incomeStatementDetail(ctx, companyID, userID, currentStart, currentEnd)
	}()
	go func() {
		defer wg.Done()
		prior, priorAccounts, priorNets, priorErr = s.incomeStatementDetail(ctx, companyID, userID, priorStart, priorEnd)
	}()
	wg.Wait()

	if currentErr != nil {
		return nil, currentErr
	}
	if priorErr != nil {
		return nil, priorErr
	}

	meta := make(map[uuid.UUID]accountDTO, len(currentAccounts)+len(priorAccounts))
	for _, a := range currentAccounts {
		meta[a.ID] = a
	}
	for _, a := range priorAccounts {
		if _, ok := meta[a.ID]; !ok {
			meta[a.ID] = a
		}
	}

	accountIDs := make(map[uuid.UUID]bool, len(currentNets)+len(priorNets))
	for id := range currentNets {
		accountIDs[id] = true
	}
	for id := range priorNets {
		accountIDs[id] = true
	}

	lines := make([]ComparativeLine, 0, len(accountIDs))
	for id := range accountIDs {
		account := meta[id]
		curVal := currentNets[id]
		priorVal := priorNets[id]
		delta := curVal.Sub(priorVal)

		var percentChange *decimal.Decimal
		if !priorVal.IsZero() {
			pct := delta.Div(priorVal).Mul(decimal.NewFromInt(100))
			percentChange = &pct
		}

		lines = append(lines, ComparativeLine{
			AccountID: id, AccountCode: account.Code, AccountName: account.Name,
			Current: curVal, Prior: priorVal, Delta: delta, PercentChange: percentChange,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].AccountCode < lines[j].AccountCode })

	return &ComparativeReport{
		CompanyID:        companyID,
		CurrentPeriod:    formatPeriod(currentStart, currentEnd),
		PriorPeriod:      formatPeriod(priorStart, priorEnd),
		Lines:            lines,
		CurrentNetIncome: current.NetIncome,
		PriorNetIncome:   prior.NetIncome,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

// CashFlowReport approximates operating cash flow via the indirect
// method: net income, minus the receivables outstanding and plus the
// payables outstanding that the aging reports show at the period end.
// Opening AP/AR balances are not subtracted, so the two adjustments are
// the full outstanding totals rather than their change over the period.
// original_source left this as "not yet implemented"; this
// supplements that gap per DESIGN.md's Open Question decision.
type CashFlowReport struct {
	CompanyID            uuid.UUID       `json:"company_id"`
	Period               string          `json:"period"`
	NetIncome            decimal.Decimal `json:"net_income"`
	ChangeInReceivables  decimal.Decimal `json:"change_in_receivables"`
	ChangeInPayables     decimal.Decimal `json:"change_in_payables"`
	NetCashFromOperating decimal.Decimal `json:"net_cash_from_operating"`
	GeneratedAt          time.Time       `json:"generated_at"`
}

func (s *Service) GenerateCashFlow(ctx context.Context, companyID, userID uuid.UUID, period string) (*CashFlowReport, error) {
	periodStart, err := time.Parse("2006-01", period)
	if err != nil {
		return nil, apperror.Validation("period must be YYYY-MM")
	}
	periodEnd := periodStart.AddDate(0, 1, -1)
	startOfYear := time.Date(periodEnd.Year(), 1, 1, 0, 0, 0, 0, time.UTC)

	var income *IncomeStatementReport
	var receivablesAging, payablesAging agingReportDTO
	var incomeErr, receivablesErr, payablesErr error

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		income, incomeErr = s.GenerateIncomeStatement(ctx, companyID, userID, startOfYear, periodEnd)
	}()
	go func() {
		defer wg.Done()
		receivablesErr = s.receivables.getJSON(ctx, "/customer-invoices/aging-report?as_of="+periodEnd.Format("2006-01-02"), companyID, userID, &receivablesAging)
	}()
	go func() {
		defer wg.Done()
		payablesErr = s.payables.getJSON(ctx, "/vendor-invoices/aging-report?as_of="+periodEnd.Format("2006-01-02"), companyID, userID, &payablesAging)
	}()
	wg.Wait()

	if incomeErr != nil {
		return nil, apperror.Dependency("income-statement", incomeErr)
	}
	if receivablesErr != nil {
		return nil, apperror.Dependency("receivables", receivablesErr)
	}
	if payablesErr != nil {
		return nil, apperror.Dependency("payables", payablesErr)
	}

	changeInReceivables := receivablesAging.Summary.Total.Neg()
	changeInPayables := payablesAging.Summary.Total
	netCash := income.NetIncome.Add(changeInReceivables).Add(changeInPayables)

	return &CashFlowReport{
		CompanyID:            companyID,
		Period:               period,
		NetIncome:            income.NetIncome,
		ChangeInReceivables:  changeInReceivables,
		ChangeInPayables:     changeInPayables,
		NetCashFromOperating: netCash,
		GeneratedAt:          time.Now().UTC(),
	}, nil
}

// Package reporting composes financial reports by fanning out HTTP
// calls to the ledger, accounts, and invoicing services and aggregating
// their responses — grounded on original_source's
// services/reporting/src/handlers/financial_reports.rs route list.
package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// peerClient is a minimal JSON-over-HTTP client to a sibling service,
// carrying the caller's identity forward via the gateway's trusted
// headers — see internal/authmw.TrustGatewayHeaders.
type peerClient struct {
	httpClient *http.Client
	baseURL    string
}

func newPeerClient(baseURL string) *peerClient {
	return &peerClient{httpClient: &http.Client{Timeout: 10 * time.Second}, baseURL: baseURL}
}

func (p *peerClient) getJSON(ctx context.Context, path string, companyID, userID uuid.UUID, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Company-ID", companyID.String())
	req.Header.Set("X-User-ID", userID.String())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", p.baseURL+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s returned status %d", p.baseURL+path, resp.StatusCode)
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response from %s: %w", p.baseURL+path, err)
	}
	return json.Unmarshal(envelope.Data, out)
}

type accountDTO struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	NormalBalance string    `json:"normal_balance"`
}

type trialBalanceLineDTO struct {
	AccountID     uuid.UUID       `json:"account_id"`
	DebitBalance  decimal.Decimal `json:"debit_balance"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
}

type trialBalanceReportDTO struct {
	Lines      []trialBalanceLineDTO `json:"lines"`
	IsBalanced bool                  `json:"is_balanced"`
}

type agingReportDTO struct {
	Summary struct {
		Current    decimal.Decimal `json:"current"`
		Days31To60 decimal.Decimal `json:"days_31_60"`
		Days61To90 decimal.Decimal `json:"days_61_90"`
		Over90Days decimal.Decimal `json:"over_90_days"`
		Total      decimal.Decimal `json:"total_outstanding"`
	} `json:"summary"`
	InvoiceCount int `json:"invoice_count"`
}

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// accountsClient is a minimal JSON-over-HTTP client to the accounts
// service, used only to resolve each account's normal-balance side when
// netting a trial balance — the same pattern internal/reporting uses to
// fan out to its siblings.
type accountsClient struct {
	httpClient *http.Client
	baseURL    string
}

func newAccountsClient(baseURL string) *accountsClient {
	return &accountsClient{httpClient: &http.Client{Timeout: 10 * time.Second}, baseURL: baseURL}
}

type accountRef struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Type          string    `json:"type"`
	NormalBalance string    `json:"normal_balance"`
}

func (c *accountsClient) listAccounts(ctx context.Context, companyID, userID uuid.UUID) ([]accountRef, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/accounts", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Company-ID", companyID.String())
	req.Header.Set("X-User-ID", userID.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s/accounts: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s/accounts returned status %d", c.baseURL, resp.StatusCode)
	}
	var envelope struct {
		Data []accountRef `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response from %s/accounts: %w", c.baseURL, err)
	}
	return envelope.Data, nil
}

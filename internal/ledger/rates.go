package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// RatesClient fetches a live exchange-rate table.
type RatesClient struct {
	url        string
	httpClient *http.Client
}

// NewRatesClient creates a client against a rate source URL.
func NewRatesClient(url string) *RatesClient {
	return &RatesClient{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch retrieves the rate table. The source responds with
// {"rates": {"JPY": 0.053, ...}}.
func (c *RatesClient) Fetch(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("rates source error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var parsed struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}
	if len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("rates source returned an empty table")
	}

	return parsed.Rates, nil
}

// Refresh returns a freshly fetched table, or the current one when the fetch
// fails. The failure is logged only; live rates are a non-critical
// enhancement.
func (c *RatesClient) Refresh(ctx context.Context, current map[string]float64) map[string]float64 {
	fetched, err := c.Fetch(ctx)
	if err != nil {
		log.Printf("Keeping previous exchange rates: %v", err)
		return current
	}
	return fetched
}

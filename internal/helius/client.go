package helius

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a Helius HTTP client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Helius client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	u := c.baseURL + path
	if strings.Contains(path, "?") {
		u += "&api-key=" + url.QueryEscape(c.apiKey)
	} else {
		u += "?api-key=" + url.QueryEscape(c.apiKey)
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(data))
	}

	return data, nil
}

// Transactions returns the enhanced transactions for the given signatures.
// Signatures the indexer has not seen yet are simply absent from the result.
func (c *Client) Transactions(ctx context.Context, signatures ...string) ([]Transaction, error) {
	params := make([]string, 0, len(signatures))
	for _, sig := range signatures {
		params = append(params, "transactionHashes[]="+url.QueryEscape(sig))
	}
	path := "/transactions/?" + strings.Join(params, "&")

	data, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var txs []Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return txs, nil
}

// --- Webhook Management ---

// ListWebhooks returns all webhooks registered for the API key
func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/webhooks", nil)
	if err != nil {
		return nil, err
	}

	var webhooks []Webhook
	if err := json.Unmarshal(data, &webhooks); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return webhooks, nil
}

// CreateWebhook creates a new enhanced-transaction webhook
func (c *Client) CreateWebhook(ctx context.Context, endpoint string, addresses []string, authHeader string) (*Webhook, error) {
	body := Webhook{
		URL:              endpoint,
		AccountAddresses: addresses,
		TransactionTypes: []string{"SWAP", "TRANSFER"},
		WebhookType:      "enhanced",
		AuthHeader:       authHeader,
	}

	data, err := c.doRequest(ctx, http.MethodPost, "/webhooks", body)
	if err != nil {
		return nil, err
	}

	var webhook Webhook
	if err := json.Unmarshal(data, &webhook); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return &webhook, nil
}

// EditWebhook replaces the watched address list of a webhook
func (c *Client) EditWebhook(ctx context.Context, webhookID, endpoint string, addresses []string, authHeader string) error {
	body := Webhook{
		URL:              endpoint,
		AccountAddresses: addresses,
		TransactionTypes: []string{"SWAP", "TRANSFER"},
		WebhookType:      "enhanced",
		AuthHeader:       authHeader,
	}

	_, err := c.doRequest(ctx, http.MethodPut, "/webhooks/"+webhookID, body)
	return err
}

// DeleteWebhook deletes a webhook
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/webhooks/"+webhookID, nil)
	return err
}

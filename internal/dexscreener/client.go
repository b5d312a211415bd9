package dexscreener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrTokenNotFound is returned when no pair is listed for a token.
var ErrTokenNotFound = errors.New("token not found")

// Client is a Dexscreener HTTP client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Dexscreener client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Lookup returns display metadata for a token, aggregated from its most
// liquid pair. ErrTokenNotFound means the token has no listed pair.
func (c *Client) Lookup(ctx context.Context, mint string) (*TokenInfo, error) {
	url := c.baseURL + "/latest/dex/tokens/" + mint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

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

	var tr tokensResponse
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if len(tr.Pairs) == 0 {
		return nil, ErrTokenNotFound
	}

	return buildTokenInfo(bestPair(tr.Pairs)), nil
}

// bestPair picks the pair with the highest USD liquidity.
func bestPair(pairs []Pair) *Pair {
	best := &pairs[0]
	for i := 1; i < len(pairs); i++ {
		if liquidityUSD(&pairs[i]) > liquidityUSD(best) {
			best = &pairs[i]
		}
	}
	return best
}

func liquidityUSD(p *Pair) float64 {
	if p.Liquidity == nil {
		return 0
	}
	return p.Liquidity.USD
}

func buildTokenInfo(p *Pair) *TokenInfo {
	info := &TokenInfo{
		Name:         p.BaseToken.Name,
		Symbol:       p.BaseToken.Symbol,
		PriceUSD:     p.PriceUSD,
		LiquidityUSD: liquidityUSD(p),
		MarketCapUSD: p.FDV,
		PairURL:      p.URL,
	}
	if info.Name == "" {
		info.Name = "Unknown"
	}

	if p.Info != nil {
		info.ImageURL = p.Info.ImageURL
		for _, link := range p.Info.Links {
			if link.Type == "telegram" {
				info.TelegramURL = link.URL
			}
		}
	}

	return info
}

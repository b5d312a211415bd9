package dexscreener

// TokenInfo is the display metadata collected for a token.
type TokenInfo struct {
	Name         string
	Symbol       string
	PriceUSD     string
	LiquidityUSD float64
	MarketCapUSD float64
	PairURL      string
	ImageURL     string
	TelegramURL  string
}

type tokensResponse struct {
	Pairs []Pair `json:"pairs"`
}

// Pair is a single DEX pair as returned by the tokens endpoint.
type Pair struct {
	URL       string     `json:"url"`
	BaseToken BaseToken  `json:"baseToken"`
	PriceUSD  string     `json:"priceUsd"`
	Liquidity *Liquidity `json:"liquidity,omitempty"`
	FDV       float64    `json:"fdv,omitempty"`
	Info      *PairInfo  `json:"info,omitempty"`
}

type BaseToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type Liquidity struct {
	USD float64 `json:"usd"`
}

type PairInfo struct {
	ImageURL string `json:"imageUrl,omitempty"`
	Links    []Link `json:"links,omitempty"`
}

type Link struct {
	Type  string `json:"type,omitempty"`
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

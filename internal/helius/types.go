package helius

// Transaction is an enhanced transaction as returned by the Helius
// transactions endpoint and delivered in webhook batches.
type Transaction struct {
	Signature       string           `json:"signature"`
	Type            string           `json:"type,omitempty"`
	Timestamp       int64            `json:"timestamp,omitempty"`
	NativeTransfers []NativeTransfer `json:"nativeTransfers,omitempty"`
	TokenTransfers  []TokenTransfer  `json:"tokenTransfers,omitempty"`
}

// NativeTransfer is a SOL movement within a transaction.
type NativeTransfer struct {
	FromUserAccount string `json:"fromUserAccount"`
	ToUserAccount   string `json:"toUserAccount"`
	Amount          int64  `json:"amount"` // lamports
}

// TokenTransfer is an SPL token movement within a transaction.
type TokenTransfer struct {
	FromUserAccount string  `json:"fromUserAccount"`
	ToUserAccount   string  `json:"toUserAccount"`
	Mint            string  `json:"mint"`
	TokenAmount     float64 `json:"tokenAmount"`
}

// Webhook is a Helius webhook registration.
type Webhook struct {
	ID               string   `json:"webhookID"`
	URL              string   `json:"webhookURL"`
	AccountAddresses []string `json:"accountAddresses,omitempty"`
	TransactionTypes []string `json:"transactionTypes,omitempty"`
	WebhookType      string   `json:"webhookType,omitempty"`
	AuthHeader       string   `json:"authHeader,omitempty"`
}

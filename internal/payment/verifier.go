package payment

import (
	"context"
	"log/slog"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/helius"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/solana"
)

// Result classifies a transaction submitted as payment proof.
type Result int

const (
	// NotYetIndexed: the indexer has no record of the transaction. It may
	// simply lag behind the chain, so the same txid is worth resubmitting.
	NotYetIndexed Result = iota
	// Rejected: the transaction is indexed but carries no qualifying
	// transfer to the payment wallet.
	Rejected
	// Confirmed: a qualifying transfer to the payment wallet exists.
	Confirmed
)

func (r Result) String() string {
	switch r {
	case NotYetIndexed:
		return "not_yet_indexed"
	case Rejected:
		return "rejected"
	case Confirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// amountTolerance absorbs float error when comparing SOL amounts.
const amountTolerance = 1e-9

// Indexer is the transaction lookup the verifier depends on.
type Indexer interface {
	Transactions(ctx context.Context, signatures ...string) ([]helius.Transaction, error)
}

// Verifier checks submitted txids against the ledger indexer.
type Verifier struct {
	indexer Indexer
	wallet  string
	log     *slog.Logger
}

// NewVerifier creates a new Verifier paying into wallet.
func NewVerifier(indexer Indexer, wallet string, log *slog.Logger) *Verifier {
	return &Verifier{
		indexer: indexer,
		wallet:  wallet,
		log:     log,
	}
}

// Verify classifies txid against the expected SOL amount. Transport failures
// map to NotYetIndexed: the user retries later, nothing is consumed.
func (v *Verifier) Verify(ctx context.Context, txid string, expectedSOL float64) Result {
	txs, err := v.indexer.Transactions(ctx, txid)
	if err != nil {
		v.log.Warn("indexer lookup failed", "txid", txid, "error", err)
		return NotYetIndexed
	}
	if len(txs) == 0 {
		return NotYetIndexed
	}

	for _, tx := range txs {
		for _, nt := range tx.NativeTransfers {
			if nt.ToUserAccount != v.wallet {
				continue
			}
			if solana.LamportsToSOL(nt.Amount)+amountTolerance >= expectedSOL {
				return Confirmed
			}
		}
	}

	return Rejected
}

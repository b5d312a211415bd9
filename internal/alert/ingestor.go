package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/helius"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/promo"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/solana"
)

// Dispatcher delivers a rendered alert to a chat destination.
type Dispatcher interface {
	SendAlert(ctx context.Context, channelID, text string) error
}

// Ingestor correlates webhook transaction batches against the promotion
// registry and dispatches buy alerts. Batches arrive from untrusted
// infrastructure and are advisory only: they drive channel messages, never
// fund movement.
type Ingestor struct {
	promos     *promo.PromotionRegistry
	dispatcher Dispatcher
	minBuySOL  float64
	log        *slog.Logger

	now func() time.Time
}

// NewIngestor creates an Ingestor dropping buys below minBuySOL.
func NewIngestor(promos *promo.PromotionRegistry, dispatcher Dispatcher, minBuySOL float64, log *slog.Logger) *Ingestor {
	return &Ingestor{
		promos:     promos,
		dispatcher: dispatcher,
		minBuySOL:  minBuySOL,
		log:        log,
		now:        time.Now,
	}
}

// Ingest processes one delivered batch, in delivery order. Each event is
// judged on its own; malformed or non-qualifying events are skipped, never
// the whole batch.
func (in *Ingestor) Ingest(ctx context.Context, batch []helius.Transaction) {
	for i := range batch {
		in.ingestOne(ctx, &batch[i])
	}
}

func (in *Ingestor) ingestOne(ctx context.Context, tx *helius.Transaction) {
	// A buy pairs a SOL leg with a token leg; anything else is not a buy.
	if len(tx.NativeTransfers) == 0 || len(tx.TokenTransfers) == 0 {
		return
	}

	var buySOL float64
	for _, nt := range tx.NativeTransfers {
		if sol := solana.LamportsToSOL(nt.Amount); sol > buySOL {
			buySOL = sol
		}
	}
	if buySOL < in.minBuySOL {
		return
	}

	var mint string
	for _, tt := range tx.TokenTransfers {
		if tt.Mint != "" {
			mint = tt.Mint
			break
		}
	}
	if mint == "" {
		return
	}

	p, ok := in.promos.TryAlert(mint, in.now())
	if !ok {
		return
	}

	text := formatBuyAlert(&p, buySOL)
	if err := in.dispatcher.SendAlert(ctx, p.ChannelID, text); err != nil {
		in.log.Error("send buy alert",
			"mint", mint,
			"signature", tx.Signature,
			"error", err,
		)
		return
	}

	in.log.Info("buy alert dispatched",
		"mint", mint,
		"buy_sol", buySOL,
		"signature", tx.Signature,
	)
}

func formatBuyAlert(p *promo.Promotion, buySOL float64) string {
	name := p.Mint
	symbol := ""
	if p.Token != nil {
		name = p.Token.Name
		symbol = p.Token.Symbol
	}

	text := fmt.Sprintf(
		"🟢 <b>New Buy!</b>\n\n"+
			"%s (%s)\n"+
			"💰 <b>%.2f SOL</b>\n\n"+
			"CA: <code>%s</code>",
		name, symbol, buySOL, p.Mint,
	)
	if p.Token != nil && p.Token.PairURL != "" {
		text += fmt.Sprintf("\n\n<a href='%s'>📈 Chart</a>", p.Token.PairURL)
	}
	return text
}

package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/promo"
)

// Expirer sweeps promotions whose package duration has elapsed and
// announces the end of each run in its channel.
type Expirer struct {
	promos     *promo.PromotionRegistry
	dispatcher Dispatcher
	log        *slog.Logger
}

// NewExpirer creates a new Expirer.
func NewExpirer(promos *promo.PromotionRegistry, dispatcher Dispatcher, log *slog.Logger) *Expirer {
	return &Expirer{
		promos:     promos,
		dispatcher: dispatcher,
		log:        log,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (e *Expirer) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.log.Info("expiry sweeper started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.sweep(ctx)
		}
	}
}

func (e *Expirer) sweep(ctx context.Context) {
	for _, p := range e.promos.Expire(time.Now()) {
		e.log.Info("promotion expired", "mint", p.Mint, "package", p.PackageID)

		name := p.Mint
		if p.Token != nil {
			name = fmt.Sprintf("%s (%s)", p.Token.Name, p.Token.Symbol)
		}
		text := fmt.Sprintf("⏹ <b>Trending ended</b>\n\n%s", name)

		if err := e.dispatcher.SendAlert(ctx, p.ChannelID, text); err != nil {
			e.log.Error("send expiry notice", "mint", p.Mint, "error", err)
		}
	}
}

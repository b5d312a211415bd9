package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/promo"
)

// FmtUSD abbreviates a dollar value for display: $1.20M, $45.30K, $12.00.
func FmtUSD(v float64) string {
	switch {
	case v <= 0:
		return "—"
	case v >= 1_000_000:
		return fmt.Sprintf("$%.2fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.2fK", v/1_000)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}

func tokenCard(sess *promo.Session) string {
	t := sess.Token

	nameLine := fmt.Sprintf("Name: %s", t.Name)
	if t.TelegramURL != "" {
		nameLine = fmt.Sprintf("🔗 Name: <a href=\"%s\">%s</a>", t.TelegramURL, t.Name)
	}

	priceLine := fmt.Sprintf("💵 Price: $%s", t.PriceUSD)
	if t.PairURL != "" {
		priceLine = fmt.Sprintf("💵 Price: <a href=\"%s\">$%s</a>", t.PairURL, t.PriceUSD)
	}

	return strings.Join([]string{
		"🟢 Token Detected",
		"",
		nameLine,
		fmt.Sprintf("💠 Symbol: %s", t.Symbol),
		priceLine,
		fmt.Sprintf("💧 Liquidity: %s", FmtUSD(t.LiquidityUSD)),
		fmt.Sprintf("📊 Market Cap: %s", FmtUSD(t.MarketCapUSD)),
	}, "\n")
}

func summaryCard(sess *promo.Session, pkg promo.Package) string {
	return tokenCard(sess) + fmt.Sprintf("\n\n⏱ Selected Package: %s", pkg.Label())
}

func paymentInstructions(inv *promo.Invoice) string {
	return fmt.Sprintf(
		"Activation address\n\n"+
			"<code>%s</code>\n\n"+
			"Amount: <b>%.2f SOL</b> (%s)\n\n"+
			"🛎️ Send TXID to confirm",
		inv.Wallet, inv.AmountSOL, inv.Package.Label(),
	)
}

func adminPendingText(p *promo.PendingActivation) string {
	name, symbol := p.Mint, ""
	if p.Token != nil {
		name, symbol = p.Token.Name, p.Token.Symbol
	}

	return fmt.Sprintf(
		"🛎️ Payment received\n"+
			"Pending activation.\n\n"+
			"%s (%s)\n"+
			"Package: %s — %.2f SOL\n"+
			"CA: <code>%s</code>",
		name, symbol, strings.ToUpper(p.PackageID), p.PaidSOL, p.Mint,
	)
}

func trendingLiveText(p *promo.Promotion) string {
	name, symbol := p.Mint, ""
	if p.Token != nil {
		name, symbol = p.Token.Name, p.Token.Symbol
	}

	return fmt.Sprintf(
		"🔥 Trending Live\n\n"+
			"%s (%s)\n"+
			"CA: <code>%s</code>\n"+
			"Started: %s",
		name, symbol, p.Mint, p.StartedAt.UTC().Format("15:04 UTC"),
	)
}

func promoListText(promos []promo.Promotion, now time.Time) string {
	if len(promos) == 0 {
		return "No active promotions."
	}

	lines := []string{"📋 <b>Active promotions:</b>", ""}
	for _, p := range promos {
		name := p.Mint
		if p.Token != nil {
			name = fmt.Sprintf("%s (%s)", p.Token.Name, p.Token.Symbol)
		}
		remaining := p.ExpiresAt.Sub(now).Round(time.Minute)
		lines = append(lines, fmt.Sprintf("• %s — %s left", name, remaining))
	}
	return strings.Join(lines, "\n")
}

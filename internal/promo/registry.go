package promo

import (
	"sort"
	"sync"
	"time"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/dexscreener"
)

// Promotion is a token currently live in the trending channel.
type Promotion struct {
	Mint      string
	Token     *dexscreener.TokenInfo
	PackageID string
	ChannelID string
	StartedAt time.Time
	ExpiresAt time.Time

	lastAlertAt time.Time // guarded by the registry mutex
}

// PromotionRegistry holds the currently promoted tokens, at most one entry
// per mint, and gates buy alerts by a per-mint cooldown.
type PromotionRegistry struct {
	mu       sync.Mutex
	cooldown time.Duration
	promos   map[string]*Promotion
}

// NewPromotionRegistry creates a registry with the given alert cooldown.
func NewPromotionRegistry(cooldown time.Duration) *PromotionRegistry {
	return &PromotionRegistry{
		cooldown: cooldown,
		promos:   make(map[string]*Promotion),
	}
}

// Activate turns an approved payment into a live promotion, replacing any
// existing entry for the mint. The alert clock starts unset, so the first
// qualifying buy alerts immediately.
func (r *PromotionRegistry) Activate(p PendingActivation, channelID string, now time.Time) Promotion {
	pkg, _ := PackageByID(p.PackageID)

	promo := &Promotion{
		Mint:      p.Mint,
		Token:     p.Token,
		PackageID: p.PackageID,
		ChannelID: channelID,
		StartedAt: now,
		ExpiresAt: now.Add(pkg.Duration),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.promos[p.Mint] = promo
	return *promo
}

// TryAlert is the atomic rate-limit gate for one buy alert. It passes only
// when mint is promoted, not expired, and the cooldown since the previous
// alert has elapsed; passing stamps the alert time in the same critical
// section, so concurrent calls for one mint cannot both pass within a
// cooldown window.
func (r *PromotionRegistry) TryAlert(mint string, now time.Time) (Promotion, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.promos[mint]
	if !ok || now.After(p.ExpiresAt) {
		return Promotion{}, false
	}
	if !p.lastAlertAt.IsZero() && now.Sub(p.lastAlertAt) < r.cooldown {
		return Promotion{}, false
	}

	p.lastAlertAt = now
	return *p, true
}

// Active returns the promotions still running at now, oldest first.
func (r *PromotionRegistry) Active(now time.Time) []Promotion {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Promotion
	for _, p := range r.promos {
		if !now.After(p.ExpiresAt) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}

// Mints returns the mints of promotions still running at now.
func (r *PromotionRegistry) Mints(now time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for mint, p := range r.promos {
		if !now.After(p.ExpiresAt) {
			out = append(out, mint)
		}
	}
	sort.Strings(out)
	return out
}

// Expire removes and returns the promotions whose package duration has
// elapsed.
func (r *PromotionRegistry) Expire(now time.Time) []Promotion {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Promotion
	for mint, p := range r.promos {
		if now.After(p.ExpiresAt) {
			out = append(out, *p)
			delete(r.promos, mint)
		}
	}
	return out
}

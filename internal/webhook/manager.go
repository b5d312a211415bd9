package webhook

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/helius"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/promo"
)

// Manager keeps the Helius webhook subscribed to the mints currently being
// promoted, so buy events only arrive for tokens we would alert on.
type Manager struct {
	client    *helius.Client
	promos    *promo.PromotionRegistry
	endpoint  string
	authToken string
	log       *slog.Logger

	mu         sync.Mutex
	webhookID  string
	subscribed map[string]bool
}

// NewManager creates a new webhook manager
func NewManager(client *helius.Client, promos *promo.PromotionRegistry, endpoint, authToken string, log *slog.Logger) *Manager {
	return &Manager{
		client:     client,
		promos:     promos,
		endpoint:   endpoint,
		authToken:  authToken,
		log:        log,
		subscribed: make(map[string]bool),
	}
}

// Init finds or creates the webhook for our endpoint.
func (m *Manager) Init(ctx context.Context) error {
	if m.endpoint == "" {
		m.log.Warn("webhook endpoint not set, skipping webhook init")
		return nil
	}

	webhooks, err := m.client.ListWebhooks(ctx)
	if err != nil {
		return err
	}

	for _, wh := range webhooks {
		if wh.URL == m.endpoint {
			m.webhookID = wh.ID
			for _, addr := range wh.AccountAddresses {
				m.subscribed[addr] = true
			}
			m.log.Info("using existing webhook", "id", wh.ID)
			return nil
		}
	}

	webhook, err := m.client.CreateWebhook(ctx, m.endpoint, nil, m.authToken)
	if err != nil {
		return err
	}

	m.webhookID = webhook.ID
	m.log.Info("created new webhook", "id", webhook.ID)

	return nil
}

// SyncLoop periodically syncs the watched address list with the active
// promotions.
func (m *Manager) SyncLoop(ctx context.Context, interval time.Duration) {
	if m.endpoint == "" {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.log.Info("webhook sync loop started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.sync(ctx); err != nil {
				m.log.Error("sync subscriptions", "error", err)
			}
		}
	}
}

func (m *Manager) sync(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.webhookID == "" {
		return nil
	}

	mints := m.promos.Mints(time.Now())

	needed := make(map[string]bool, len(mints))
	for _, mint := range mints {
		needed[mint] = true
	}

	changed := len(needed) != len(m.subscribed)
	if !changed {
		for mint := range needed {
			if !m.subscribed[mint] {
				changed = true
				break
			}
		}
	}
	if !changed {
		return nil
	}

	// Helius replaces the whole address list on edit.
	if err := m.client.EditWebhook(ctx, m.webhookID, m.endpoint, mints, m.authToken); err != nil {
		return err
	}

	m.subscribed = needed
	m.log.Info("webhook subscriptions updated", "count", len(mints))
	return nil
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/alert"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/config"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/dexscreener"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/helius"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/payment"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/promo"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/telegram"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/webhook"
)

func main() {
	// Setup logger
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(log)

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	// Load config
	cfg := config.Load()

	if cfg.BotToken == "" {
		log.Error("BOT_TOKEN is required")
		os.Exit(1)
	}
	if cfg.AdminID == 0 {
		log.Error("ADMIN_ID is required")
		os.Exit(1)
	}
	if cfg.PayWallet == "" {
		log.Error("PAY_WALLET is required")
		os.Exit(1)
	}
	if cfg.ChannelID == "" {
		log.Error("CHANNEL_ID is required")
		os.Exit(1)
	}

	// External clients
	dex := dexscreener.NewClient(cfg.DexScreenerBaseURL)
	heliusClient := helius.NewClient(cfg.HeliusBaseURL, cfg.HeliusAPIKey)
	log.Info("api clients initialized",
		"helius", cfg.HeliusBaseURL,
		"dexscreener", cfg.DexScreenerBaseURL,
	)

	// Core state
	sessions := promo.NewSessionStore()
	txids := promo.NewTxSet()
	pending := promo.NewActivationRegistry(cfg.AdminID)
	promos := promo.NewPromotionRegistry(cfg.AlertCooldown)

	verifier := payment.NewVerifier(heliusClient, cfg.PayWallet, log)
	flow := promo.NewFlow(sessions, txids, pending, promos, dex, verifier,
		cfg.PayWallet, cfg.ChannelID, log)

	// Telegram bot
	tgBot, err := telegram.New(cfg, flow, log)
	if err != nil {
		log.Error("init telegram bot", "error", err)
		os.Exit(1)
	}
	log.Info("telegram bot initialized")

	// Alert pipeline
	ingestor := alert.NewIngestor(promos, tgBot, cfg.MinBuySOL, log)
	expirer := alert.NewExpirer(promos, tgBot, log)

	// Webhook manager
	webhookManager := webhook.NewManager(heliusClient, promos, cfg.WebhookEndpoint, cfg.WebhookAuthToken, log)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.WebhookEndpoint != "" {
		if err := webhookManager.Init(ctx); err != nil {
			log.Error("init webhook", "error", err)
		} else {
			log.Info("webhook initialized", "endpoint", cfg.WebhookEndpoint)
		}
	}

	// Start webhook server
	webhookServer := webhook.NewServer(ingestor, cfg.WebhookAuthToken, log)
	go func() {
		if err := webhookServer.Start(ctx, cfg.WebhookPort); err != nil && err != http.ErrServerClosed {
			log.Error("webhook server", "error", err)
		}
	}()

	// Start webhook sync loop
	go webhookManager.SyncLoop(ctx, 30*time.Second)

	// Start promotion expiry sweeper
	go expirer.Start(ctx, 30*time.Second)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info("shutting down...")
		cancel()
	}()

	// Start bot polling
	log.Info("starting bot polling...")
	tgBot.Start(ctx)
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Telegram
	BotToken  string
	AdminID   int64
	ChannelID string

	// Payments
	PayWallet string

	// Helius
	HeliusAPIKey  string
	HeliusBaseURL string

	// Dexscreener
	DexScreenerBaseURL string

	// Webhook
	WebhookEndpoint  string
	WebhookPort      int
	WebhookAuthToken string

	// Alerts
	MinBuySOL     float64
	AlertCooldown time.Duration

	// UI
	PromptImageURL string
}

const defaultPromptImageURL = "https://raw.githubusercontent.com/edenalpha687/pumpfun-trending-bot/main/DF090CBC-91A5-4116-9600-9FF376E69ACA.png"

func Load() *Config {
	return &Config{
		// Telegram
		BotToken:  getEnv("BOT_TOKEN", ""),
		AdminID:   getEnvInt64("ADMIN_ID", 0),
		ChannelID: getEnv("CHANNEL_ID", ""),

		// Payments
		PayWallet: getEnv("PAY_WALLET", ""),

		// Helius
		HeliusAPIKey:  getEnv("HELIUS_API_KEY", ""),
		HeliusBaseURL: strings.TrimSuffix(getEnv("HELIUS_BASE_URL", "https://api.helius.xyz/v0"), "/"),

		// Dexscreener
		DexScreenerBaseURL: strings.TrimSuffix(getEnv("DEXSCREENER_BASE_URL", "https://api.dexscreener.com"), "/"),

		// Webhook
		WebhookEndpoint:  getEnv("WEBHOOK_ENDPOINT", ""),
		WebhookPort:      getEnvInt("WEBHOOK_PORT", 8080),
		WebhookAuthToken: getEnv("WEBHOOK_AUTH_TOKEN", ""),

		// Alerts
		MinBuySOL:     getEnvFloat("MIN_BUY_SOL", 0.5),
		AlertCooldown: time.Duration(getEnvInt("ALERT_COOLDOWN_SECONDS", 60)) * time.Second,

		// UI
		PromptImageURL: getEnv("PROMPT_IMAGE_URL", defaultPromptImageURL),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

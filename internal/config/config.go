package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	// Path to the sqlite database holding all persisted trip state.
	DatabasePath string

	// Gemini API key. Optional: when empty, every AI feature degrades to its
	// offline fallback instead of failing the whole app.
	GeminiAPIKey string

	// Optional URL of a live exchange-rate source. When empty the static
	// built-in table is used.
	RatesURL string

	// Home currency for budget totals.
	HomeCurrency string

	// Telegram Config (required only by the bot binary)
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	dbPath := os.Getenv("TRIP_DB_PATH")
	if dbPath == "" {
		dbPath = "data/trips.db"
	}

	homeCurrency := os.Getenv("HOME_CURRENCY")
	if homeCurrency == "" {
		homeCurrency = "HKD"
	}

	var allowedIDs []int64
	if raw := os.Getenv("TELEGRAM_ALLOW_USER_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOW_USER_IDS entry %q: %w", part, err)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	var adminID int64
	if raw := os.Getenv("ADMIN_TELEGRAM_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID %q: %w", raw, err)
		}
		adminID = id
	}

	return &Config{
		DatabasePath:           dbPath,
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		RatesURL:               os.Getenv("EXCHANGE_RATES_URL"),
		HomeCurrency:           homeCurrency,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
		AdminTelegramID:        adminID,
	}, nil
}

// RequireTelegram validates the fields the bot binary cannot run without.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	return nil
}

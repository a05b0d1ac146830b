package config

import (
	"fmt"
	"os"
)

// Config holds the configuration for the application.
type Config struct {
	DBPath    string
	CachePath string
	JWTSecret string
	Port      string

	// Suggestion provider config. An empty API key disables suggestions.
	SuggestionProvider string
	OpenAIAPIKey       string
	GeminiAPIKey       string

	// Optional live price feed. Empty means the mock generator is used.
	PriceFeedURL string

	// Telegram Config (required for the bot binary only)
	TelegramBotToken    string
	TelegramAllowChatID int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/grocery.db"
	}

	cachePath := os.Getenv("CACHE_PATH")
	if cachePath == "" {
		cachePath = "./data/suggestions.json"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	provider := os.Getenv("SUGGESTION_PROVIDER")
	if provider == "" {
		provider = "openai"
	}
	if provider != "openai" && provider != "gemini" {
		return nil, fmt.Errorf("SUGGESTION_PROVIDER must be 'openai' or 'gemini', got %q", provider)
	}

	telegramAllowChatIDStr := os.Getenv("TELEGRAM_ALLOW_CHAT_ID")
	var telegramAllowChatID int64
	if telegramAllowChatIDStr != "" {
		fmt.Sscanf(telegramAllowChatIDStr, "%d", &telegramAllowChatID)
	}

	return &Config{
		DBPath:              dbPath,
		CachePath:           cachePath,
		JWTSecret:           jwtSecret,
		Port:                port,
		SuggestionProvider:  provider,
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		PriceFeedURL:        os.Getenv("PRICE_FEED_URL"),
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramAllowChatID: telegramAllowChatID,
	}, nil
}

package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	clearOptional := func() {
		os.Unsetenv("DB_PATH")
		os.Unsetenv("CACHE_PATH")
		os.Unsetenv("PORT")
		os.Unsetenv("SUGGESTION_PROVIDER")
		os.Unsetenv("OPENAI_API_KEY")
		os.Unsetenv("GEMINI_API_KEY")
		os.Unsetenv("PRICE_FEED_URL")
	}

	t.Run("Success", func(t *testing.T) {
		clearOptional()
		setEnv("JWT_SECRET", "secret-key")
		setEnv("DB_PATH", "/tmp/test.db")
		setEnv("OPENAI_API_KEY", "openai_key")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.JWTSecret != "secret-key" {
			t.Errorf("Expected JWTSecret to be 'secret-key', got '%s'", cfg.JWTSecret)
		}
		if cfg.DBPath != "/tmp/test.db" {
			t.Errorf("Expected DBPath to be '/tmp/test.db', got '%s'", cfg.DBPath)
		}
		if cfg.OpenAIAPIKey != "openai_key" {
			t.Errorf("Expected OpenAIAPIKey to be 'openai_key', got '%s'", cfg.OpenAIAPIKey)
		}
		if cfg.SuggestionProvider != "openai" {
			t.Errorf("Expected default provider 'openai', got '%s'", cfg.SuggestionProvider)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		clearOptional()
		setEnv("JWT_SECRET", "secret-key")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DBPath != "./data/grocery.db" {
			t.Errorf("Expected default DBPath, got '%s'", cfg.DBPath)
		}
		if cfg.CachePath != "./data/suggestions.json" {
			t.Errorf("Expected default CachePath, got '%s'", cfg.CachePath)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected default Port '8080', got '%s'", cfg.Port)
		}
		if cfg.OpenAIAPIKey != "" {
			t.Errorf("Expected empty OpenAIAPIKey, got '%s'", cfg.OpenAIAPIKey)
		}
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		clearOptional()
		os.Unsetenv("JWT_SECRET")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing JWT_SECRET, got nil")
		}
		expectedError := "JWT_SECRET environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("InvalidProvider", func(t *testing.T) {
		clearOptional()
		setEnv("JWT_SECRET", "secret-key")
		setEnv("SUGGESTION_PROVIDER", "watson")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for invalid SUGGESTION_PROVIDER, got nil")
		}
	})

	t.Run("TelegramChatID", func(t *testing.T) {
		clearOptional()
		setEnv("JWT_SECRET", "secret-key")
		setEnv("TELEGRAM_ALLOW_CHAT_ID", "12345")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.TelegramAllowChatID != 12345 {
			t.Errorf("Expected TelegramAllowChatID 12345, got %d", cfg.TelegramAllowChatID)
		}
	})
}

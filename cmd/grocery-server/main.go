package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"grocery-planner/internal/auth"
	"grocery-planner/internal/config"
	"grocery-planner/internal/database"
	"grocery-planner/internal/grocery"
	"grocery-planner/internal/llm"
	"grocery-planner/internal/metrics"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/pricing"
	"grocery-planner/internal/server"
	"grocery-planner/internal/suggest"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.NewFromEnv()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database initialized", "path", cfg.DBPath)

	items := grocery.NewRepository(db.SQL)
	prefs := preferences.NewRepository(db.SQL)
	users := auth.NewUserRepository(db.SQL)
	authn := auth.NewPasswordAuthenticator(users)
	tokens := auth.NewJWTManager(cfg.JWTSecret)
	usageStore := metrics.NewStore(db.SQL)

	gen := newTextGenerator(cfg)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	suggester := suggest.NewSuggester(gen, suggest.NewParser(), rng, usageStore)
	cache := suggest.NewCache(suggester, cfg.CachePath, time.Now)

	var prices pricing.Source = pricing.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	if cfg.PriceFeedURL != "" {
		slog.Info("using live price feed", "url", cfg.PriceFeedURL)
		prices = pricing.NewWebSource(cfg.PriceFeedURL, prices)
	}

	srv := server.New(items, prefs, authn, tokens, cache, prices, time.Now)

	addr := ":" + cfg.Port
	slog.Info("server starting", "address", addr)
	if err := srv.Listen(addr); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// newTextGenerator selects the suggestion provider from config. A missing
// credential returns nil, which disables suggestion fetching entirely.
func newTextGenerator(cfg *config.Config) llm.TextGenerator {
	switch cfg.SuggestionProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			slog.Warn("GEMINI_API_KEY not set, suggestions disabled")
			return nil
		}
		gen, err := llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			slog.Error("failed to initialize Gemini client, suggestions disabled", "error", err)
			return nil
		}
		return gen
	default:
		if cfg.OpenAIAPIKey == "" {
			slog.Warn("OPENAI_API_KEY not set, suggestions disabled")
			return nil
		}
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	}
}

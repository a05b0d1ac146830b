package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"grocery-planner/internal/config"
	"grocery-planner/internal/database"
	"grocery-planner/internal/grocery"
	"grocery-planner/internal/llm"
	"grocery-planner/internal/metrics"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/suggest"
	"grocery-planner/internal/telegram"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.NewFromEnv()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.TelegramBotToken == "" {
		slog.Error("TELEGRAM_BOT_TOKEN environment variable not set")
		os.Exit(1)
	}

	db, err := database.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	items := grocery.NewRepository(db.SQL)
	prefs := preferences.NewRepository(db.SQL)
	usageStore := metrics.NewStore(db.SQL)

	var gen llm.TextGenerator
	if cfg.OpenAIAPIKey != "" {
		gen = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	} else {
		slog.Warn("OPENAI_API_KEY not set, suggestions disabled")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	suggester := suggest.NewSuggester(gen, suggest.NewParser(), rng, usageStore)
	cache := suggest.NewCache(suggester, cfg.CachePath, time.Now)

	bot, err := telegram.New(cfg.TelegramBotToken, cfg.TelegramAllowChatID, items, prefs, cache)
	if err != nil {
		slog.Error("failed to initialize telegram bot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}

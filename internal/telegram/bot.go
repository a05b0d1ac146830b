// Package telegram provides a small chat surface over the grocery list.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"grocery-planner/internal/grocery"
	"grocery-planner/internal/planner"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/suggest"
)

// Bot serves the grocery list to a single allowed Telegram chat.
type Bot struct {
	api         *tgbotapi.BotAPI
	allowChatID int64
	items       *grocery.Repository
	prefs       *preferences.Repository
	cache       *suggest.Cache
}

// New creates a Bot bound to one chat ID. A zero allowChatID allows any chat.
func New(token string, allowChatID int64, items *grocery.Repository, prefs *preferences.Repository, cache *suggest.Cache) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Bot{
		api:         api,
		allowChatID: allowChatID,
		items:       items,
		prefs:       prefs,
		cache:       cache,
	}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	slog.Info("telegram bot started", "username", b.api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			if b.allowChatID != 0 && update.Message.Chat.ID != b.allowChatID {
				slog.Warn("ignoring message from unauthorized chat", "chat_id", update.Message.Chat.ID)
				continue
			}
			b.handle(ctx, update.Message)
		}
	}
}

func (b *Bot) handle(ctx context.Context, msg *tgbotapi.Message) {
	// Each chat gets its own item list, independent of web accounts.
	userID := fmt.Sprintf("telegram:%d", msg.Chat.ID)

	var reply string
	switch msg.Command() {
	case "list":
		reply = b.listReply(ctx, userID)
	case "add":
		reply = b.addReply(ctx, userID, msg.CommandArguments())
	case "suggest":
		reply = b.suggestReply(ctx, userID)
	case "plan":
		reply = b.planReply(ctx, userID)
	default:
		reply = "Commands: /list, /add <name>, /suggest, /plan"
	}

	if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
		slog.Error("failed to send telegram reply", "error", err)
	}
}

func (b *Bot) listReply(ctx context.Context, userID string) string {
	items, err := b.items.ListItems(ctx, userID)
	if err != nil {
		slog.Error("failed to list items for bot", "error", err)
		return "Could not load your list, try again later."
	}
	if len(items) == 0 {
		return "Your grocery list is empty."
	}

	var sb strings.Builder
	for _, item := range items {
		check := "[ ]"
		if item.Purchased {
			check = "[x]"
		}
		fmt.Fprintf(&sb, "%s %s (%s)\n", check, item.Name, item.Category)
	}
	return sb.String()
}

func (b *Bot) addReply(ctx context.Context, userID, name string) string {
	name = strings.TrimSpace(name)
	item := grocery.Item{UserID: userID, Name: name}
	if err := b.items.AddItem(ctx, &item); err != nil {
		switch err {
		case grocery.ErrEmptyName:
			return "Usage: /add <item name>"
		case grocery.ErrDuplicateName:
			return fmt.Sprintf("%q is already on your list.", name)
		default:
			slog.Error("failed to add item from bot", "error", err)
			return "Could not add the item, try again later."
		}
	}
	return fmt.Sprintf("Added %q to your list.", item.Name)
}

func (b *Bot) suggestReply(ctx context.Context, userID string) string {
	prefs, err := b.prefs.Get(ctx, userID)
	if err != nil {
		slog.Error("failed to load preferences for bot", "error", err)
		return "Could not load your preferences, try again later."
	}

	suggestions := b.cache.Get(ctx, prefs)
	if len(suggestions) == 0 {
		return "No suggestions right now. Add dietary preferences first."
	}

	var sb strings.Builder
	sb.WriteString("Suggested items:\n")
	for _, s := range suggestions {
		fmt.Fprintf(&sb, "- %s (%s) $%s at %s\n", s.Name, s.Category, s.Price, s.Store)
	}
	return sb.String()
}

func (b *Bot) planReply(ctx context.Context, userID string) string {
	items, err := b.items.ListItems(ctx, userID)
	if err != nil {
		slog.Error("failed to list items for bot plan", "error", err)
		return "Could not build your plan, try again later."
	}

	plan := planner.Plan(items)
	if len(plan) == 0 {
		return "Nothing to plan: no unpurchased items with a store assigned."
	}

	var sb strings.Builder
	for _, sp := range plan {
		fmt.Fprintf(&sb, "%s ($%.2f):\n", sp.Store, sp.TotalCost)
		for _, item := range sp.Items {
			fmt.Fprintf(&sb, "  - %s\n", item.Name)
		}
	}
	return sb.String()
}

package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"grocery-planner/internal/llm"
	"grocery-planner/internal/metrics"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/shared"
)

// storeNames is the fixed set a suggested item is randomly assigned to.
// The provider does not return real price or store data.
var storeNames = []string{"Whole Foods", "Trader Joe's", "Safeway"}

// UsageRecorder persists provider call metadata. Optional.
type UsageRecorder interface {
	Record(meta shared.ProviderMeta) error
}

// Suggester fetches and parses food suggestions from a text-completion
// provider. Every failure degrades to an empty result; nothing here is
// surfaced to the user as an error.
type Suggester struct {
	gen    llm.TextGenerator // nil when no credential is configured
	parser Parser
	usage  UsageRecorder // nil disables usage recording

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSuggester creates a Suggester. A nil generator is valid and means the
// provider credential is absent; every fetch then answers empty.
func NewSuggester(gen llm.TextGenerator, parser Parser, rng *rand.Rand, usage UsageRecorder) *Suggester {
	return &Suggester{
		gen:    gen,
		parser: parser,
		rng:    rng,
		usage:  usage,
	}
}

// Suggest fetches suggestions for the given preferences. It returns nil when
// the fetch was skipped or failed, and a non-nil (possibly empty) slice when
// a completion was parsed. The result is unfiltered; allergen filtering is
// applied at retrieval time by the cache.
func (s *Suggester) Suggest(ctx context.Context, prefs preferences.Preferences) []FoodItem {
	if s.gen == nil {
		slog.Warn("suggestion provider credential not configured, skipping fetch")
		return nil
	}
	if len(prefs.DietaryPreferences) == 0 {
		slog.Info("no dietary preferences provided, skipping suggestion fetch")
		return nil
	}

	prompt, err := buildPrompt(prefs)
	if err != nil {
		slog.Error("failed to build suggestion prompt", "error", err)
		return nil
	}

	start := time.Now()
	metrics.ProviderRequests.Inc()
	resp, err := s.gen.GenerateContent(ctx, prompt)
	if err != nil {
		metrics.ProviderFailures.Inc()
		slog.Error("failed to fetch suggestions from provider", "error", err)
		return nil
	}
	latency := time.Since(start)
	metrics.ProviderLatency.Observe(latency.Seconds())

	if s.usage != nil {
		meta := shared.ProviderMeta{
			Provider: "suggestions",
			Usage:    resp.Usage,
			Latency:  latency,
		}
		if err := s.usage.Record(meta); err != nil {
			slog.Warn("failed to record provider usage", "error", err)
		}
	}

	items := s.parser.Parse(resp.Content)
	s.attachPriceAndStore(items)
	return items
}

// attachPriceAndStore assigns a randomized plausible price and a random store
// to each parsed item.
func (s *Suggester) attachPriceAndStore(items []FoodItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range items {
		items[i].Price = fmt.Sprintf("%.2f", s.rng.Float64()*10+1)
		items[i].Store = storeNames[s.rng.Intn(len(storeNames))]
	}
}

func buildPrompt(prefs preferences.Preferences) (string, error) {
	dietaryJSON, err := json.Marshal(prefs.DietaryPreferences)
	if err != nil {
		return "", fmt.Errorf("failed to serialize dietary preferences: %w", err)
	}
	allergiesJSON, err := json.Marshal(prefs.Allergies)
	if err != nil {
		return "", fmt.Errorf("failed to serialize allergies: %w", err)
	}

	return fmt.Sprintf(`I am creating a grocery shopping list based on dietary preferences and allergies.
User's preferences: %s.
User's allergies: %s.
Suggest 6 food items that meet these criteria with basic nutrition information (per 100g),
and categorize the items (e.g., Protein, Grains, etc.).`, dietaryJSON, allergiesJSON), nil
}

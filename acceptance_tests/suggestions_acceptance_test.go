package acceptance_tests

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"grocery-planner/internal/llm"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/suggest"
)

// --- Mock LLM Client ---
type mockLLMClient struct {
	generateContentCalls int
}

const completionFixture = `Here are 6 food items that meet your criteria:

1. **Quinoa**
- Category: Grains
- Nutrition per 100g:
- Calories: 120 cal
- Protein: 4.4 g
- Carbohydrates: 21 g
- Fat: 1.9 g

2. **Peanut Butter**
- Category: Protein
- Nutrition per 100g:
- Calories: 588 cal
- Protein: 25 g
- Carbohydrates: 20 g
- Fat: 50 g

Enjoy your healthy shopping!`

func (m *mockLLMClient) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.generateContentCalls++
	return llm.ContentResponse{Content: completionFixture}, nil
}

// --- Acceptance Test ---
func TestSuggestionCachingWorkflow(t *testing.T) {
	ctx := context.Background()

	current := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	client := &mockLLMClient{}
	suggester := suggest.NewSuggester(client, suggest.NewParser(), rand.New(rand.NewSource(1)), nil)
	cachePath := filepath.Join(t.TempDir(), "suggestions.json")
	cache := suggest.NewCache(suggester, cachePath, clock)

	prefs := preferences.Preferences{
		UserID:             "user-1",
		DietaryPreferences: []string{"high-protein"},
		Budget:             100,
	}

	// --- Step 1: first retrieval hits the provider ---
	t.Log("--- Step 1: Fresh fetch ---")
	items := cache.Get(ctx, prefs)
	if client.generateContentCalls != 1 {
		t.Fatalf("Expected 1 provider call, got %d", client.generateContentCalls)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 parsed items, got %d", len(items))
	}
	if items[0].Name != "Quinoa" || items[1].Name != "Peanut Butter" {
		t.Errorf("Unexpected items: %+v", items)
	}
	if items[0].Price == "" || items[0].Store == "" {
		t.Errorf("Expected a price and store attached, got %+v", items[0])
	}

	// --- Step 2: within the hour the cache answers ---
	t.Log("--- Step 2: Cache hit ---")
	current = current.Add(45 * time.Minute)
	items = cache.Get(ctx, prefs)
	if client.generateContentCalls != 1 {
		t.Errorf("Expected no new provider call, got %d total", client.generateContentCalls)
	}
	if len(items) != 2 {
		t.Errorf("Expected 2 cached items, got %d", len(items))
	}

	// --- Step 3: allergen filtering applies to cached data ---
	t.Log("--- Step 3: Allergy added after caching ---")
	prefs.Allergies = []string{"peanut"}
	items = cache.Get(ctx, prefs)
	if client.generateContentCalls != 1 {
		t.Errorf("Expected filtering to run on the cached set, got %d calls", client.generateContentCalls)
	}
	if len(items) != 1 || items[0].Name != "Quinoa" {
		t.Errorf("Expected only Quinoa after filtering peanuts, got %+v", items)
	}

	// --- Step 4: after expiry the provider is consulted again ---
	t.Log("--- Step 4: Expiry ---")
	current = current.Add(61 * time.Minute)
	items = cache.Get(ctx, prefs)
	if client.generateContentCalls != 2 {
		t.Errorf("Expected a refetch after expiry, got %d calls", client.generateContentCalls)
	}
	if len(items) != 1 {
		t.Errorf("Expected filtered refetched items, got %d", len(items))
	}

	// --- Step 5: the entry survives a restart via the cache file ---
	t.Log("--- Step 5: Restart ---")
	reopened := suggest.NewCache(suggester, cachePath, clock)
	items = reopened.Get(ctx, preferences.Preferences{UserID: "user-1", DietaryPreferences: []string{"high-protein"}})
	if client.generateContentCalls != 2 {
		t.Errorf("Expected the reopened cache to reuse the file, got %d calls", client.generateContentCalls)
	}
	if len(items) != 2 {
		t.Errorf("Expected 2 unfiltered items after restart, got %d", len(items))
	}
}

package metrics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"grocery-planner/internal/database"
	"grocery-planner/internal/shared"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL)
}

func TestRecordAndDailyUsage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		meta := shared.ProviderMeta{
			Provider: "suggestions",
			Usage: shared.TokenUsage{
				PromptTokens:     100,
				CompletionTokens: 50,
				TotalTokens:      150,
				Model:            "gpt-3.5-turbo",
			},
			Latency: 250 * time.Millisecond,
		}
		if err := store.Record(meta); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	usage, err := store.GetDailyUsage(ctx, 7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("Expected 1 day of usage, got %d", len(usage))
	}
	if usage[0].TotalCalls != 3 {
		t.Errorf("Expected 3 calls, got %d", usage[0].TotalCalls)
	}
	if usage[0].TotalPrompt != 300 || usage[0].TotalCompletion != 150 {
		t.Errorf("Unexpected token totals: %+v", usage[0])
	}
}

func TestCleanup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Record(shared.ProviderMeta{Provider: "suggestions"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Today's record is newer than any cleanup threshold.
	if err := store.Cleanup(ctx, 30); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	usage, err := store.GetDailyUsage(ctx, 7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(usage) != 1 {
		t.Errorf("Expected record to survive cleanup, got %d days", len(usage))
	}
}

package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"grocery-planner/internal/shared"
)

// Store handles persistence of provider usage metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves one provider call's metadata to the database.
func (s *Store) Record(meta shared.ProviderMeta) error {
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO provider_metrics (provider, model, prompt_tokens, completion_tokens, latency_ms, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		meta.Provider, meta.Usage.Model, meta.Usage.PromptTokens,
		meta.Usage.CompletionTokens, meta.Latency.Milliseconds(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert provider metric: %w", err)
	}
	return nil
}

// DailyUsage represents token totals for a single day.
type DailyUsage struct {
	Date            string
	TotalPrompt     int
	TotalCompletion int
	TotalCalls      int
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx,
		`SELECT DATE(timestamp) AS day,
		        COALESCE(SUM(prompt_tokens), 0),
		        COALESCE(SUM(completion_tokens), 0),
		        COUNT(*)
		 FROM provider_metrics
		 WHERE timestamp >= ?
		 GROUP BY day
		 ORDER BY day`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Date, &u.TotalPrompt, &u.TotalCompletion, &u.TotalCalls); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage: %w", err)
		}
		results = append(results, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily usage: %w", err)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) error {
	threshold := time.Now().AddDate(0, 0, -olderThanDays)
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM provider_metrics WHERE timestamp < ?`, threshold); err != nil {
		return fmt.Errorf("failed to clean up provider metrics: %w", err)
	}
	return nil
}

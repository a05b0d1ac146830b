package preferences

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository handles persistence of user preferences.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new preferences repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get retrieves a user's preferences, falling back to defaults when the user
// has never saved any.
func (r *Repository) Get(ctx context.Context, userID string) (Preferences, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT dietary_preferences, allergies, fitness_goals, budget
		 FROM user_preferences WHERE user_id = ?`, userID)

	var dietaryJSON, allergiesJSON, goalsJSON string
	p := Default(userID)
	err := row.Scan(&dietaryJSON, &allergiesJSON, &goalsJSON, &p.Budget)
	if err != nil {
		if err == sql.ErrNoRows {
			return p, nil
		}
		return p, fmt.Errorf("failed to get user preferences: %w", err)
	}

	if err := unmarshalTags(dietaryJSON, &p.DietaryPreferences); err != nil {
		return p, fmt.Errorf("failed to decode dietary preferences: %w", err)
	}
	if err := unmarshalTags(allergiesJSON, &p.Allergies); err != nil {
		return p, fmt.Errorf("failed to decode allergies: %w", err)
	}
	if err := unmarshalTags(goalsJSON, &p.FitnessGoals); err != nil {
		return p, fmt.Errorf("failed to decode fitness goals: %w", err)
	}
	return p, nil
}

// Save upserts a user's preferences wholesale.
func (r *Repository) Save(ctx context.Context, p Preferences) error {
	if p.Budget < 0 {
		return ErrNegativeBudget
	}

	dietaryJSON, err := marshalTags(p.DietaryPreferences)
	if err != nil {
		return fmt.Errorf("failed to encode dietary preferences: %w", err)
	}
	allergiesJSON, err := marshalTags(p.Allergies)
	if err != nil {
		return fmt.Errorf("failed to encode allergies: %w", err)
	}
	goalsJSON, err := marshalTags(p.FitnessGoals)
	if err != nil {
		return fmt.Errorf("failed to encode fitness goals: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, dietary_preferences, allergies, fitness_goals, budget, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   dietary_preferences = excluded.dietary_preferences,
		   allergies = excluded.allergies,
		   fitness_goals = excluded.fitness_goals,
		   budget = excluded.budget,
		   updated_at = excluded.updated_at`,
		p.UserID, dietaryJSON, allergiesJSON, goalsJSON, p.Budget, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save user preferences: %w", err)
	}
	return nil
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalTags(data string, dst *[]string) error {
	if data == "" {
		*dst = []string{}
		return nil
	}
	return json.Unmarshal([]byte(data), dst)
}

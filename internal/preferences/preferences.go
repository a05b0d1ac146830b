package preferences

import "errors"

// DefaultBudget is the weekly budget assigned before a user saves preferences.
const DefaultBudget = 100

var ErrNegativeBudget = errors.New("budget must not be negative")

// Preferences is the per-user singleton of dietary settings.
// FitnessGoals is collected and displayed but never consulted by the
// suggestion or planning logic.
type Preferences struct {
	UserID             string   `json:"user_id"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
	FitnessGoals       []string `json:"fitness_goals"`
	Budget             float64  `json:"budget"`
}

// Default returns the preferences a user has before saving any.
func Default(userID string) Preferences {
	return Preferences{
		UserID:             userID,
		DietaryPreferences: []string{},
		Allergies:          []string{},
		FitnessGoals:       []string{},
		Budget:             DefaultBudget,
	}
}

package grocery

import (
	"errors"
	"time"
)

var (
	ErrEmptyName     = errors.New("item name must not be empty")
	ErrDuplicateName = errors.New("an item with this name already exists")
	ErrNotFound      = errors.New("item not found")
)

// DefaultCategory is assigned to items created without an explicit category.
const DefaultCategory = "Other"

// Item represents a single grocery list entry owned by one user.
type Item struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Purchased      bool       `json:"purchased"`
	Price          *float64   `json:"price,omitempty"`
	Store          string     `json:"store,omitempty"`
}

// Store represents a known grocery store.
type Store struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location *string `json:"location"`
}

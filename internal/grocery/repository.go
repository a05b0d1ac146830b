package grocery

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// dateLayout is the storage format for expiration dates. Expiration is a
// calendar date with no time-of-day semantics.
const dateLayout = "2006-01-02"

// Repository handles persistence of grocery items and stores.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new grocery item repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListItems returns all items belonging to a user.
func (r *Repository) ListItems(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, category, expiration_date, purchased, price, store
		 FROM grocery_items WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grocery items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate grocery items: %w", err)
	}
	return items, nil
}

// GetItem retrieves a single item by ID, scoped to its owner.
// Returns nil, nil when no such item exists.
func (r *Repository) GetItem(ctx context.Context, userID, id string) (*Item, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, category, expiration_date, purchased, price, store
		 FROM grocery_items WHERE user_id = ? AND id = ?`, userID, id)
	item, err := scanItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// AddItem validates and inserts a new item. Names are unique per user,
// compared case-insensitively; a duplicate is rejected before any write.
func (r *Repository) AddItem(ctx context.Context, item *Item) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return ErrEmptyName
	}
	if item.Category == "" {
		item.Category = DefaultCategory
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM grocery_items WHERE user_id = ? AND LOWER(name) = LOWER(?)`,
		item.UserID, item.Name).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate item name: %w", err)
	}
	if count > 0 {
		return ErrDuplicateName
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO grocery_items (id, user_id, name, category, expiration_date, purchased, price, store, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.Name, item.Category, formatDate(item.ExpirationDate),
		item.Purchased, item.Price, nullString(item.Store), now, now)
	if err != nil {
		return fmt.Errorf("failed to insert grocery item: %w", err)
	}
	return nil
}

// UpdateItem overwrites a stored item's mutable fields.
func (r *Repository) UpdateItem(ctx context.Context, item *Item) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return ErrEmptyName
	}
	if item.Category == "" {
		item.Category = DefaultCategory
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE grocery_items
		 SET name = ?, category = ?, expiration_date = ?, purchased = ?, price = ?, store = ?, updated_at = ?
		 WHERE user_id = ? AND id = ?`,
		item.Name, item.Category, formatDate(item.ExpirationDate), item.Purchased,
		item.Price, nullString(item.Store), time.Now().UTC(), item.UserID, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update grocery item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// TogglePurchased flips an item's purchased flag and returns the updated item.
// The flip is only reflected back to callers after the write succeeds.
func (r *Repository) TogglePurchased(ctx context.Context, userID, id string) (*Item, error) {
	item, err := r.GetItem(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	item.Purchased = !item.Purchased
	if err := r.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item by ID, scoped to its owner.
func (r *Repository) DeleteItem(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM grocery_items WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete grocery item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListStores returns all known stores.
func (r *Repository) ListStores(ctx context.Context) ([]Store, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, location FROM stores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	var stores []Store
	for rows.Next() {
		var s Store
		var location sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &location); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		if location.Valid {
			s.Location = &location.String
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stores: %w", err)
	}
	return stores, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var item Item
	var expiration, store sql.NullString
	var price sql.NullFloat64

	err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Category,
		&expiration, &item.Purchased, &price, &store)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan grocery item: %w", err)
	}

	if expiration.Valid && expiration.String != "" {
		t, err := time.Parse(dateLayout, expiration.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expiration date %q: %w", expiration.String, err)
		}
		item.ExpirationDate = &t
	}
	if price.Valid {
		item.Price = &price.Float64
	}
	if store.Valid {
		item.Store = store.String
	}
	return &item, nil
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

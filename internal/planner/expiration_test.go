package planner

import (
	"testing"
	"time"

	"grocery-planner/internal/grocery"
)

func date(t time.Time) *time.Time {
	return &t
}

func TestExpiringSoon(t *testing.T) {
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	items := []grocery.Item{
		{Name: "Spinach", Purchased: true, ExpirationDate: date(now.AddDate(0, 0, 2))},
		{Name: "Yogurt", Purchased: true, ExpirationDate: date(now.AddDate(0, 0, 5))},
		{Name: "Chicken", Purchased: true, ExpirationDate: date(now)},
		{Name: "Cheese", Purchased: true, ExpirationDate: date(now.AddDate(0, 0, 9))},  // outside window
		{Name: "Old Milk", Purchased: true, ExpirationDate: date(now.AddDate(0, 0, -1))}, // already expired
		{Name: "Quinoa", Purchased: false, ExpirationDate: date(now.AddDate(0, 0, 1))},   // not purchased
		{Name: "Salt", Purchased: true}, // no expiration date
	}

	expiring := ExpiringSoon(items, now)
	if len(expiring) != 3 {
		t.Fatalf("Expected 3 expiring items, got %d", len(expiring))
	}

	want := []struct {
		name string
		days int
	}{
		{"Chicken", 0},
		{"Spinach", 2},
		{"Yogurt", 5},
	}
	for i, w := range want {
		if expiring[i].Name != w.name {
			t.Errorf("Expected %s at position %d, got %s", w.name, i, expiring[i].Name)
		}
		if expiring[i].DaysLeft != w.days {
			t.Errorf("Expected %d days left for %s, got %d", w.days, w.name, expiring[i].DaysLeft)
		}
	}
}

func TestExpiringSoon_Empty(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if expiring := ExpiringSoon(nil, now); len(expiring) != 0 {
		t.Errorf("Expected no alerts for no items, got %d", len(expiring))
	}
}

package planner

import (
	"sort"
	"time"

	"grocery-planner/internal/grocery"
)

// ExpirationWindowDays is how far ahead expiration alerts look.
const ExpirationWindowDays = 5

// ExpiringItem is a purchased item expiring within the alert window.
type ExpiringItem struct {
	grocery.Item
	DaysLeft int `json:"days_left"`
}

// ExpiringSoon returns purchased items whose expiration date falls between
// today and ExpirationWindowDays from now inclusive, sorted soonest first.
func ExpiringSoon(items []grocery.Item, now time.Time) []ExpiringItem {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var expiring []ExpiringItem
	for _, item := range items {
		if !item.Purchased || item.ExpirationDate == nil {
			continue
		}
		exp := *item.ExpirationDate
		expDay := time.Date(exp.Year(), exp.Month(), exp.Day(), 0, 0, 0, 0, now.Location())
		days := int(expDay.Sub(today).Hours() / 24)
		if days < 0 || days > ExpirationWindowDays {
			continue
		}
		expiring = append(expiring, ExpiringItem{Item: item, DaysLeft: days})
	}

	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].DaysLeft < expiring[j].DaysLeft
	})
	return expiring
}

package suggest

import "strings"

// Nutrition holds per-100g values. Fields stay strings because they are
// scraped from free text and default to "0" on any parse miss.
type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// FoodItem is an ephemeral suggested item. It only becomes a grocery item,
// with a fresh identity, when the user accepts it.
type FoodItem struct {
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	NutritionPer100g Nutrition `json:"nutritionPer100g"`
	Price            string    `json:"price"`
	Store            string    `json:"store"`
}

// FilterAllergens removes items whose name contains any allergen as a
// case-insensitive substring. It always returns a non-nil slice.
func FilterAllergens(items []FoodItem, allergies []string) []FoodItem {
	out := make([]FoodItem, 0, len(items))
	for _, item := range items {
		if containsAllergen(item.Name, allergies) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func containsAllergen(name string, allergies []string) bool {
	lower := strings.ToLower(name)
	for _, allergen := range allergies {
		if allergen == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(allergen)) {
			return true
		}
	}
	return false
}

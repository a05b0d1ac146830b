package suggest

import (
	"regexp"
	"strings"
)

// Fallback values when a line is absent or fails to match the expected shape.
const (
	fallbackName     = "Beans"
	fallbackCategory = "Vegetables"
	fallbackNumber   = "0"
)

// Parser turns an unstructured completion into structured food items.
// The positional implementation is deliberately brittle; isolating it behind
// this interface lets a structured-output provider replace it without
// touching callers.
type Parser interface {
	Parse(raw string) []FoodItem
}

// positionalParser scrapes a free-text completion by blank-line blocks and
// fixed line positions. The upstream response format is not contractually
// fixed, so every field falls back to a default rather than failing.
type positionalParser struct{}

// NewParser returns the positional free-text parser.
func NewParser() Parser {
	return positionalParser{}
}

var (
	reNumberedName  = regexp.MustCompile(`^\d+\.\s?\*\*(.*?)\*\*$`)
	reFoodLabel     = regexp.MustCompile(`^-?\s*Food Item:\s*`)
	reCategoryLabel = regexp.MustCompile(`^-?\s*Category:\s*`)
	reCalUnit       = regexp.MustCompile(`\s?cal\s?`)
	reCaloriesLabel = regexp.MustCompile(`^-?\s*Calories:\s*`)
	reKcalValue     = regexp.MustCompile(`^-\s?(\d+)\s?kcal$`)
	reGramUnit      = regexp.MustCompile(`\s?g\s?`)
	reProteinLabel  = regexp.MustCompile(`^-?\s*Protein:\s*`)
	reCarbsLabel    = regexp.MustCompile(`^-?\s*Carbohydrates:\s*`)
	reFatLabel      = regexp.MustCompile(`^-?\s*Fat:\s*`)
)

// Parse splits the text into blocks on blank lines, drops the first and last
// block (preamble and closing remarks), and reads each remaining block as a
// fixed-position list of lines:
//
//	line 0: name, line 1: category,
//	line 3: calories, line 4: protein, line 5: carbs, line 6: fat.
func (positionalParser) Parse(raw string) []FoodItem {
	blocks := strings.Split(raw, "\n\n")
	if len(blocks) <= 2 {
		return []FoodItem{}
	}
	blocks = blocks[1 : len(blocks)-1]

	items := make([]FoodItem, 0, len(blocks))
	for _, block := range blocks {
		lines := strings.Split(block, "\n")
		for i := range lines {
			lines[i] = strings.TrimSpace(lines[i])
		}

		items = append(items, FoodItem{
			Name:     parseName(line(lines, 0)),
			Category: parseCategory(line(lines, 1)),
			NutritionPer100g: Nutrition{
				Calories: parseCalories(line(lines, 3)),
				Protein:  parseGrams(line(lines, 4), reProteinLabel),
				Carbs:    parseGrams(line(lines, 5), reCarbsLabel),
				Fat:      parseGrams(line(lines, 6), reFatLabel),
			},
		})
	}
	return items
}

func line(lines []string, i int) string {
	if i >= len(lines) {
		return ""
	}
	return lines[i]
}

func parseName(s string) string {
	s = reNumberedName.ReplaceAllString(s, "$1")
	s = reFoodLabel.ReplaceAllString(s, "")
	s = reCategoryLabel.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return fallbackName
	}
	return s
}

func parseCategory(s string) string {
	s = reFoodLabel.ReplaceAllString(s, "")
	s = reCategoryLabel.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return fallbackCategory
	}
	return s
}

func parseCalories(s string) string {
	s = reCalUnit.ReplaceAllString(s, "")
	s = reCaloriesLabel.ReplaceAllString(s, "")
	s = reKcalValue.ReplaceAllString(s, "$1")
	s = strings.TrimSpace(s)
	if s == "" {
		return fallbackNumber
	}
	return s
}

func parseGrams(s string, label *regexp.Regexp) string {
	s = reGramUnit.ReplaceAllString(s, "")
	s = label.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return fallbackNumber
	}
	return s
}

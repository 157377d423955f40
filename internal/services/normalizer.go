package services

import (
	"strings"
)

// phrasePrefixes are leading phrases stripped before tokenizing
var phrasePrefixes = []string{
	"juice of ",
	"zest of ",
	"optional: ",
}

// normalizeStopwords are tokens dropped during ingredient text
// normalization: units, preparation verbs, size and quality
// adjectives, plant-part nouns, and connector words
var normalizeStopwords = map[string]bool{}

func init() {
	for _, w := range []string{
		// Units
		"cup", "cups", "tablespoon", "tablespoons", "tbsp", "teaspoon", "teaspoons", "tsp",
		"ounce", "ounces", "oz", "pound", "pounds", "lb", "lbs", "gram", "grams", "g",
		"kilogram", "kilograms", "kg", "liter", "liters", "l", "milliliter", "milliliters", "ml",
		"pinch", "dash", "handful", "slice", "slices", "piece", "pieces", "pcs",
		// Preparation methods
		"chopped", "diced", "minced", "sliced", "fresh", "dried", "ground", "crushed", "grated",
		"shredded", "melted", "softened", "beaten", "whisked", "toasted", "roasted",
		// Size descriptors
		"large", "medium", "small", "whole", "half", "quarter", "mini", "extra", "jumbo",
		// Quality descriptors
		"pure", "organic", "natural", "raw", "unbleached", "free", "range", "cage",
		"grade", "quality", "premium", "fancy", "select", "choice",
		// Plant parts and connectors
		"leaves", "stems", "sprigs", "stalks", "of", "to", "into", "or", "and", "for",
		// Common adjectives
		"all-purpose", "purpose", "all", "light", "dark", "unsalted", "salted", "sweetened",
		"unsweetened", "plain", "regular", "low", "fat", "sodium", "reduced",
	} {
		normalizeStopwords[w] = true
	}
}

// NormalizeIngredientText reduces free ingredient text to a canonical
// phrase for identity resolution. Pure and idempotent:
// "2 cups all-purpose flour" → "flour".
func NormalizeIngredientText(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))

	for _, prefix := range phrasePrefixes {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
		}
	}

	var kept []string
	for _, word := range strings.Fields(s) {
		if isNumeric(word) {
			continue
		}
		if normalizeStopwords[word] {
			continue
		}
		// Parenthetical notes like "(optional)" or "(about 1.5 lb)"
		if strings.ContainsAny(word, "()") {
			continue
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}

// isNumeric reports whether a token is a bare number or fraction
// like "2", "1.5", or "1/2"
func isNumeric(word string) bool {
	stripped := strings.Map(func(r rune) rune {
		if r == '.' || r == '/' {
			return -1
		}
		return r
	}, word)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

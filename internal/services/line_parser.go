package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ovenmitt/pantry-track/internal/models"
)

// IngredientLineParser splits raw recipe lines like
// "1 ½ cups all-purpose flour" into amount, unit, and name. The unit
// comes back as written; the converter owns spelling normalization.
type IngredientLineParser struct {
	rangePattern    *regexp.Regexp
	fractionPattern *regexp.Regexp
	quantityPattern *regexp.Regexp
	unitPattern     *regexp.Regexp
}

// Unicode vulgar fractions mapping
var unicodeFractions = map[rune]float64{
	'¼': 0.25,     // ¼
	'½': 0.5,      // ½
	'¾': 0.75,     // ¾
	'⅐': 0.142857, // ⅐
	'⅑': 0.111111, // ⅑
	'⅒': 0.1,      // ⅒
	'⅓': 0.333333, // ⅓
	'⅔': 0.666667, // ⅔
	'⅕': 0.2,      // ⅕
	'⅖': 0.4,      // ⅖
	'⅗': 0.6,      // ⅗
	'⅘': 0.8,      // ⅘
	'⅙': 0.166667, // ⅙
	'⅚': 0.833333, // ⅚
	'⅛': 0.125,    // ⅛
	'⅜': 0.375,    // ⅜
	'⅝': 0.625,    // ⅝
	'⅞': 0.875,    // ⅞
}

// Superscript digits for fractions like ¹/₂
var superscriptDigits = map[rune]int{
	'⁰': 0, '¹': 1, '²': 2, '³': 3,
	'⁴': 4, '⁵': 5, '⁶': 6, '⁷': 7,
	'⁸': 8, '⁹': 9,
}

// Subscript digits for fractions like ¹/₂
var subscriptDigits = map[rune]int{
	'₀': 0, '₁': 1, '₂': 2, '₃': 3,
	'₄': 4, '₅': 5, '₆': 6, '₇': 7,
	'₈': 8, '₉': 9,
}

// NewIngredientLineParser creates a new line parser
func NewIngredientLineParser() *IngredientLineParser {
	return &IngredientLineParser{
		// Match quantity range: 2.5 - 3
		rangePattern: regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)\s*`),

		// Match ASCII fraction: 1/2, 3/4
		fractionPattern: regexp.MustCompile(`^(\d+)/(\d+)\s*`),

		// Match quantity at start: 1, 1.5, etc.
		quantityPattern: regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*`),

		// Match measurement units (case insensitive) - longer patterns first
		unitPattern: regexp.MustCompile(`(?i)^(tablespoons?|teaspoons?|fluid ounces?|milliliters?|millilitres?|kilograms?|gallons?|ounces?|pounds?|liters?|litres?|quarts?|pints?|heads?|grams?|cups?|cans?|tbsp|floz|tsp|tbs|gal|qt|pt|oz|lbs?|ml|cl|kg|g|l|c)\b\.?\s*`),
	}
}

// ParseLines parses a slice of raw ingredient lines, skipping blanks
func (p *IngredientLineParser) ParseLines(lines []string) []models.ParsedIngredientLine {
	parsed := make([]models.ParsedIngredientLine, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parsed = append(parsed, p.ParseLine(line))
	}
	return parsed
}

// ParseLine parses one raw ingredient line
func (p *IngredientLineParser) ParseLine(line string) models.ParsedIngredientLine {
	result := models.ParsedIngredientLine{
		Original: line,
		Amount:   1.0,
	}

	remaining := strings.TrimSpace(line)
	remaining, result.Amount = p.extractQuantity(remaining)
	remaining, result.Unit = p.extractUnit(remaining)
	result.Name = cleanLineName(remaining)

	return result
}

// extractQuantity handles ranges, mixed numbers, unicode fractions,
// ASCII fractions, and plain numbers, in that order
func (p *IngredientLineParser) extractQuantity(s string) (string, float64) {
	s = strings.TrimSpace(s)
	quantity := 1.0

	// Range like "2.5 - 3": use the average
	if matches := p.rangePattern.FindStringSubmatch(s); len(matches) == 3 {
		low, _ := strconv.ParseFloat(matches[1], 64)
		high, _ := strconv.ParseFloat(matches[2], 64)
		return strings.TrimSpace(s[len(matches[0]):]), (low + high) / 2
	}

	// Whole number + unicode fraction ("1 ½")
	wholePattern := regexp.MustCompile(`^(\d+)\s+`)
	if matches := wholePattern.FindStringSubmatch(s); len(matches) == 2 {
		afterWhole := strings.TrimSpace(s[len(matches[0]):])
		if rest, frac := extractUnicodeFraction(afterWhole); frac > 0 {
			whole, _ := strconv.ParseFloat(matches[1], 64)
			return rest, whole + frac
		}
	}

	// Whole number + ASCII fraction ("1 1/2")
	mixedPattern := regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)\s*`)
	if matches := mixedPattern.FindStringSubmatch(s); len(matches) == 4 {
		whole, _ := strconv.ParseFloat(matches[1], 64)
		num, _ := strconv.ParseFloat(matches[2], 64)
		denom, _ := strconv.ParseFloat(matches[3], 64)
		if denom != 0 {
			quantity = whole + num/denom
		}
		return strings.TrimSpace(s[len(matches[0]):]), quantity
	}

	// Bare unicode fraction ("½")
	if rest, frac := extractUnicodeFraction(s); frac > 0 {
		return rest, frac
	}

	// Bare ASCII fraction ("1/2")
	if matches := p.fractionPattern.FindStringSubmatch(s); len(matches) == 3 {
		num, _ := strconv.ParseFloat(matches[1], 64)
		denom, _ := strconv.ParseFloat(matches[2], 64)
		if denom != 0 {
			quantity = num / denom
		}
		return strings.TrimSpace(s[len(matches[0]):]), quantity
	}

	// Decimal or whole number
	if matches := p.quantityPattern.FindStringSubmatch(s); len(matches) == 2 {
		quantity, _ = strconv.ParseFloat(matches[1], 64)
		s = strings.TrimSpace(s[len(matches[0]):])
	}

	return s, quantity
}

// extractUnicodeFraction handles unicode vulgar fractions and
// superscript/subscript fractions like ¹⁄₂
func extractUnicodeFraction(s string) (string, float64) {
	runes := []rune(s)
	idx := 0
	for idx < len(runes) && unicode.IsSpace(runes[idx]) {
		idx++
	}
	if idx >= len(runes) {
		return s, 0
	}

	if val, ok := unicodeFractions[runes[idx]]; ok {
		return strings.TrimSpace(string(runes[idx+1:])), val
	}

	// Superscript numerator
	numerator := 0
	hasNumerator := false
	for idx < len(runes) {
		digit, ok := superscriptDigits[runes[idx]]
		if !ok {
			break
		}
		numerator = numerator*10 + digit
		idx++
		hasNumerator = true
	}

	// Fraction slash (U+2044) or plain slash, then subscript denominator
	if hasNumerator && idx < len(runes) && (runes[idx] == '⁄' || runes[idx] == '/') {
		idx++
		denominator := 0
		hasDenominator := false
		for idx < len(runes) {
			digit, ok := subscriptDigits[runes[idx]]
			if !ok {
				break
			}
			denominator = denominator*10 + digit
			idx++
			hasDenominator = true
		}
		if hasDenominator && denominator > 0 {
			return strings.TrimSpace(string(runes[idx:])), float64(numerator) / float64(denominator)
		}
	}

	return s, 0
}

// extractUnit pulls a leading measurement unit off the string. Count
// words like "cloves" or "slices" stay in the name; the normalizer
// strips them and the converter treats the line as discrete.
func (p *IngredientLineParser) extractUnit(s string) (string, string) {
	s = strings.TrimSpace(s)
	if matches := p.unitPattern.FindStringSubmatch(s); len(matches) >= 2 {
		unit := strings.ToLower(matches[1])
		return strings.TrimSpace(s[len(matches[0]):]), unit
	}
	return s, ""
}

// cleanLineName strips trailing punctuation and collapses whitespace
func cleanLineName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,;:-_")
	s = regexp.MustCompile(`\s+`).ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

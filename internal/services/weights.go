package services

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/ovenmitt/pantry-track/internal/models"
)

// Weight lookup tier names, persisted as weight_source
const (
	WeightSourceRecipeText = "recipe_text"
	WeightSourceManual     = "manual"
	WeightSourceExternal   = "usda"
)

// WeightProvider is the pluggable external per-unit weight lookup.
// Implementations must swallow their own failures (timeouts, bad
// payloads) and report ok=false instead.
type WeightProvider interface {
	LookupUnitWeight(ctx context.Context, ingredientName string) (grams float64, ok bool)
}

// WeightResult is the outcome of a successful weight estimation
type WeightResult struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Source   string  `json:"source"`
}

// WeightEstimator finds per-unit gram weights for count-based
// ingredients ("2 chicken breasts"). Successful lookups are cached on
// the ingredient identity so they run once per ingredient.
type WeightEstimator struct {
	store    IdentityStore
	provider WeightProvider
}

// NewWeightEstimator creates a weight estimator. provider may be nil,
// which disables the external tier.
func NewWeightEstimator(store IdentityStore, provider WeightProvider) *WeightEstimator {
	return &WeightEstimator{store: store, provider: provider}
}

// weightHintPattern finds "<number><weight unit>" anywhere in
// ingredient text, e.g. "2 chicken breasts (about 1.5 lb)"
var weightHintPattern = regexp.MustCompile(`(?i)([0-9.]+)\s*(lbs?|pounds?|oz|ounces?|g|grams?|kg|kilos?|kilograms?)\b`)

// ExtractWeightHint scans ingredient text for an inline weight like
// "1.5 lb" or "680g". The first occurrence wins.
func ExtractWeightHint(text string) (quantity float64, unit string, ok bool) {
	if text == "" {
		return 0, "", false
	}
	m := weightHintPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	quantity, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return quantity, strings.ToLower(m[2]), true
}

// Estimate returns the total gram weight for count units of an
// ingredient, or ok=false if no tier produced data — the caller then
// falls back to treating the line as a bare discrete count.
//
// Tiers: cached identity weight, inline hint in the original recipe
// text, the curated manual table, then the external provider. Any
// tier hit is written back onto the identity as a cache.
func (e *WeightEstimator) Estimate(ctx context.Context, ingredient *models.Ingredient, count float64, originalText string) (WeightResult, bool) {
	if count <= 0 {
		return WeightResult{}, false
	}

	// Cached weight short-circuits everything
	if ingredient.AvgWeightGrams != nil {
		source := "cached"
		if ingredient.WeightSource != nil {
			source = *ingredient.WeightSource
		}
		return WeightResult{
			Quantity: count * *ingredient.AvgWeightGrams,
			Unit:     BaseUnitGram,
			Source:   source,
		}, true
	}

	var perUnit float64
	var source string

	// Tier 1: inline weight hint in the recipe text
	if qty, unit, ok := ExtractWeightHint(originalText); ok {
		conv := ConvertToBaseUnit(qty, unit, ingredient.Name)
		if conv.BaseUnit == BaseUnitGram {
			perUnit = conv.Quantity / count
			source = WeightSourceRecipeText
		}
	}

	// Tier 2: curated manual weights
	if source == "" {
		if grams, ok := ManualUnitWeight(ingredient.Name); ok {
			perUnit = grams
			source = WeightSourceManual
		}
	}

	// Tier 3: external provider
	if source == "" && e.provider != nil {
		if grams, ok := e.provider.LookupUnitWeight(ctx, ingredient.Name); ok {
			perUnit = grams
			source = WeightSourceExternal
		}
	}

	if source == "" {
		return WeightResult{}, false
	}

	// Cache the per-unit weight on the identity. Writing the same
	// value twice is harmless, so a failed write only costs a repeat
	// lookup later.
	if err := e.store.SetIngredientWeight(ctx, ingredient.ID, perUnit, source); err != nil {
		log.Printf("Warning: failed to cache weight for %q: %v", ingredient.Name, err)
	} else {
		ingredient.AvgWeightGrams = &perUnit
		ingredient.WeightSource = &source
	}

	return WeightResult{
		Quantity: count * perUnit,
		Unit:     BaseUnitGram,
		Source:   source,
	}, true
}

package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ovenmitt/pantry-track/internal/models"
)

// IdentityStore is the persistence boundary for canonical ingredients
// and their learned aliases. Lookups return (nil, nil) when no row
// matches. Upserts must be expressed as insert-or-return-existing so
// concurrent resolutions never error on the uniqueness constraints.
type IdentityStore interface {
	GetIngredientByName(ctx context.Context, name string) (*models.Ingredient, error)
	GetIngredientByID(ctx context.Context, id int) (*models.Ingredient, error)
	GetAliasByText(ctx context.Context, alias string) (*models.IngredientAlias, error)
	UpsertIngredient(ctx context.Context, name, normalizedName string) (*models.Ingredient, error)
	UpsertAlias(ctx context.Context, alias string, ingredientID int) error
	SetIngredientWeight(ctx context.Context, ingredientID int, grams float64, source string) error
}

// IngredientResolver resolves normalized ingredient text to a
// canonical identity. It owns all identity and alias creation.
type IngredientResolver struct {
	store IdentityStore
}

// NewIngredientResolver creates a new ingredient resolver
func NewIngredientResolver(store IdentityStore) *IngredientResolver {
	return &IngredientResolver{store: store}
}

// Resolve finds or creates the canonical ingredient for a normalized
// name. It never fails to produce an identity short of a store error.
// Tiers, first hit wins:
//  1. exact match on stored name or normalized_name
//  2. exact match in the alias table
//  3. static seed table (regional names, modifier-stripped forms)
//  4. morphological singularization of the last word
//  5. the name is itself a manual-weight-table key
//  6. create a brand-new identity
//
// Every hit below tier 2 records a new alias so the next identical
// lookup short-circuits at the top of the chain.
func (r *IngredientResolver) Resolve(ctx context.Context, normalizedName string) (*models.Ingredient, error) {
	name := strings.ToLower(strings.TrimSpace(normalizedName))
	if name == "" {
		return nil, fmt.Errorf("cannot resolve empty ingredient name")
	}

	// Tier 1: exact match on stored identity
	ingredient, err := r.store.GetIngredientByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("ingredient lookup: %w", err)
	}
	if ingredient != nil {
		return ingredient, nil
	}

	// Tier 2: learned alias
	alias, err := r.store.GetAliasByText(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("alias lookup: %w", err)
	}
	if alias != nil {
		ingredient, err = r.store.GetIngredientByID(ctx, alias.IngredientID)
		if err != nil {
			return nil, fmt.Errorf("aliased ingredient lookup: %w", err)
		}
		if ingredient == nil {
			return nil, fmt.Errorf("alias %q points at missing ingredient %d", name, alias.IngredientID)
		}
		return ingredient, nil
	}

	// Tier 3: static seed table
	if canonical := seedCanonicalFor(name); canonical != "" {
		ingredient, err = r.getOrCreate(ctx, canonical)
		if err != nil {
			return nil, err
		}
		if name != canonical {
			r.learnAlias(ctx, name, ingredient.ID)
		}
		return ingredient, nil
	}

	// Tier 4: singular forms of the last word
	for _, candidate := range singularCandidates(name) {
		if _, ok := ManualUnitWeight(candidate); ok {
			ingredient, err = r.getOrCreate(ctx, candidate)
			if err != nil {
				return nil, err
			}
			r.learnAlias(ctx, name, ingredient.ID)
			return ingredient, nil
		}
		ingredient, err = r.store.GetIngredientByName(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("singular lookup: %w", err)
		}
		if ingredient != nil {
			r.learnAlias(ctx, name, ingredient.ID)
			return ingredient, nil
		}
	}

	// Tier 5: the name itself is a known fresh-weight ingredient
	if _, ok := ManualUnitWeight(name); ok {
		return r.getOrCreate(ctx, name)
	}

	// Tier 6: brand-new identity
	return r.getOrCreate(ctx, name)
}

// getOrCreate upserts the canonical identity for a name
func (r *IngredientResolver) getOrCreate(ctx context.Context, name string) (*models.Ingredient, error) {
	ingredient, err := r.store.UpsertIngredient(ctx, name, name)
	if err != nil {
		return nil, fmt.Errorf("upsert ingredient %q: %w", name, err)
	}
	return ingredient, nil
}

// learnAlias records a text→identity mapping. Failures are logged and
// swallowed: a lost alias only costs a slower lookup next time, and
// concurrent resolutions may race to create the same one.
func (r *IngredientResolver) learnAlias(ctx context.Context, alias string, ingredientID int) {
	if err := r.store.UpsertAlias(ctx, alias, ingredientID); err != nil {
		log.Printf("Warning: failed to record alias %q -> %d: %v", alias, ingredientID, err)
	}
}

// singularCandidates generates singular forms of a phrase by
// de-pluralizing its last word. Candidates come back in fixed
// priority order: -ies→-y, -oes→-o, then plain trailing -s.
func singularCandidates(phrase string) []string {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return nil
	}
	last := words[len(words)-1]
	prefix := strings.Join(words[:len(words)-1], " ")

	join := func(singular string) string {
		if prefix == "" {
			return singular
		}
		return prefix + " " + singular
	}

	var candidates []string
	if strings.HasSuffix(last, "ies") && len(last) > 3 {
		candidates = append(candidates, join(strings.TrimSuffix(last, "ies")+"y"))
	}
	if strings.HasSuffix(last, "oes") && len(last) > 3 {
		candidates = append(candidates, join(strings.TrimSuffix(last, "es")))
	}
	if strings.HasSuffix(last, "s") && !strings.HasSuffix(last, "ss") && !strings.HasSuffix(last, "ies") {
		candidates = append(candidates, join(strings.TrimSuffix(last, "s")))
	}
	return candidates
}

package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ovenmitt/pantry-track/internal/models"
)

// InventoryStore lists stocked items joined with their product rows
type InventoryStore interface {
	ListItemsWithProducts(ctx context.Context) ([]models.ItemWithProduct, error)
}

// SubstitutionStore reads substitution rules keyed by the original
// (missing) ingredient, in stored order
type SubstitutionStore interface {
	ListSubstitutionsFor(ctx context.Context, ingredientID int) ([]models.Substitution, error)
}

// RecipeStore reads recipes and their requirements for matching
type RecipeStore interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipeIngredients(ctx context.Context, recipeID int) ([]models.RecipeIngredient, error)
}

// RecipeMatcher aggregates inventory and scores recipe feasibility.
// It is read-only over identities, aliases, and substitution rules.
type RecipeMatcher struct {
	identities IdentityStore
	inventory  InventoryStore
	subs       SubstitutionStore
	recipes    RecipeStore
}

// NewRecipeMatcher creates a new recipe matcher
func NewRecipeMatcher(identities IdentityStore, inventory InventoryStore, subs SubstitutionStore, recipes RecipeStore) *RecipeMatcher {
	return &RecipeMatcher{
		identities: identities,
		inventory:  inventory,
		subs:       subs,
		recipes:    recipes,
	}
}

// AggregateInventory builds the per-ingredient stock map for one
// matching run. Items whose product name has no alias are silently
// excluded — they exist in inventory but cannot satisfy any recipe.
// Contributions whose base unit disagrees with the ingredient's
// existing line are logged and dropped, never summed.
func (m *RecipeMatcher) AggregateInventory(ctx context.Context) (map[int]*models.InventoryLine, error) {
	items, err := m.inventory.ListItemsWithProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	lines := make(map[int]*models.InventoryLine)

	for _, item := range items {
		productName := strings.ToLower(strings.TrimSpace(item.Product.Name))
		if productName == "" {
			continue
		}

		alias, err := m.identities.GetAliasByText(ctx, productName)
		if err != nil {
			return nil, fmt.Errorf("alias lookup for %q: %w", productName, err)
		}
		if alias == nil {
			log.Printf("No ingredient alias for product %q, excluded from matching", item.Product.Name)
			continue
		}

		ingredient, err := m.identities.GetIngredientByID(ctx, alias.IngredientID)
		if err != nil {
			return nil, fmt.Errorf("ingredient lookup: %w", err)
		}
		if ingredient == nil {
			log.Printf("Alias %q points at missing ingredient %d, skipping", productName, alias.IngredientID)
			continue
		}

		packageQty := item.Product.PackageQuantity
		if packageQty == 0 {
			packageQty = 1
		}
		packageUnit := item.Product.PackageUnit
		totalQty := item.Qty * packageQty

		conv := ConvertToBaseUnit(totalQty, packageUnit, ingredient.Name)

		contribution := models.ContributingProduct{
			ProductName: item.Product.Name,
			Quantity:    totalQty,
			Unit:        packageUnit,
		}

		if line, ok := lines[ingredient.ID]; ok {
			if line.BaseUnit != conv.BaseUnit {
				log.Printf("Unit mismatch for %q: %s vs %s, dropping contribution from %q",
					ingredient.Name, line.BaseUnit, conv.BaseUnit, item.Product.Name)
				continue
			}
			line.TotalQuantity += conv.Quantity
			line.Products = append(line.Products, contribution)
		} else {
			lines[ingredient.ID] = &models.InventoryLine{
				IngredientID:   ingredient.ID,
				IngredientName: ingredient.Name,
				TotalQuantity:  conv.Quantity,
				BaseUnit:       conv.BaseUnit,
				Products:       []models.ContributingProduct{contribution},
			}
		}
	}

	return lines, nil
}

// MatchRecipe scores one recipe against an aggregated inventory map.
// A requirement whose canonical ingredient no longer exists is a hard
// error; callers batching over recipes skip the recipe and continue.
func (m *RecipeMatcher) MatchRecipe(ctx context.Context, recipe models.Recipe, inventory map[int]*models.InventoryLine) (models.RecipeMatch, error) {
	requirements, err := m.recipes.GetRecipeIngredients(ctx, recipe.ID)
	if err != nil {
		return models.RecipeMatch{}, fmt.Errorf("recipe %d ingredients: %w", recipe.ID, err)
	}

	match := models.RecipeMatch{
		RecipeID:               recipe.ID,
		RecipeTitle:            recipe.Title,
		IngredientAvailability: []models.IngredientAvailability{},
		MissingIngredients:     []string{},
		SuggestedSubstitutions: []models.SubstitutionSuggestion{},
	}

	availableCount := 0

	for _, req := range requirements {
		ingredient, err := m.identities.GetIngredientByID(ctx, req.CanonicalIngredientID)
		if err != nil {
			return models.RecipeMatch{}, fmt.Errorf("ingredient lookup: %w", err)
		}
		if ingredient == nil {
			return models.RecipeMatch{}, fmt.Errorf("recipe %q references missing ingredient %d", recipe.Title, req.CanonicalIngredientID)
		}

		required := ConvertToBaseUnit(req.Quantity, req.Unit, ingredient.Name)

		availability := models.IngredientAvailability{
			IngredientID:     ingredient.ID,
			IngredientName:   ingredient.Name,
			RequiredQuantity: required.Quantity,
			Unit:             required.BaseUnit,
		}

		line, inStock := inventory[ingredient.ID]
		switch {
		case inStock && line.BaseUnit == required.BaseUnit:
			availability.AvailableQuantity = line.TotalQuantity
			availability.IsSufficient = line.TotalQuantity >= required.Quantity
		case inStock:
			// Incompatible base units: treat as unavailable
			availability.AvailableQuantity = 0
			availability.IsSufficient = false
		default:
			// Absent entirely: one substitution lookup
			if sub, err := m.findSubstitution(ctx, ingredient, inventory); err != nil {
				return models.RecipeMatch{}, err
			} else if sub != nil {
				match.SuggestedSubstitutions = append(match.SuggestedSubstitutions, *sub)
			}
		}

		match.IngredientAvailability = append(match.IngredientAvailability, availability)
		if availability.IsSufficient {
			availableCount++
		} else {
			match.MissingIngredients = append(match.MissingIngredients, ingredient.Name)
		}
	}

	if len(requirements) > 0 {
		match.AvailabilityPercent = float64(availableCount) / float64(len(requirements)) * 100
	}

	switch {
	case match.AvailabilityPercent == 100:
		match.MatchType = models.MatchTypeExact
	case len(match.SuggestedSubstitutions) > 0:
		match.MatchType = models.MatchTypeWithSubstitutions
	default:
		match.MatchType = models.MatchTypeMissing
	}

	return match, nil
}

// findSubstitution returns the first acceptable substitution for a
// missing ingredient: stored order, quality score of at least 5, and
// the substitute present in inventory. The substitute's available
// quantity is deliberately not checked against the ratio-adjusted
// requirement.
func (m *RecipeMatcher) findSubstitution(ctx context.Context, original *models.Ingredient, inventory map[int]*models.InventoryLine) (*models.SubstitutionSuggestion, error) {
	rules, err := m.subs.ListSubstitutionsFor(ctx, original.ID)
	if err != nil {
		return nil, fmt.Errorf("substitutions for %q: %w", original.Name, err)
	}

	for _, rule := range rules {
		if rule.QualityScore < 5 {
			continue
		}
		if _, ok := inventory[rule.SubstituteIngredientID]; !ok {
			continue
		}

		substitute, err := m.identities.GetIngredientByID(ctx, rule.SubstituteIngredientID)
		if err != nil {
			return nil, fmt.Errorf("substitute lookup: %w", err)
		}
		if substitute == nil {
			continue
		}

		return &models.SubstitutionSuggestion{
			OriginalIngredientID:     original.ID,
			OriginalIngredientName:   original.Name,
			SubstituteIngredientID:   substitute.ID,
			SubstituteIngredientName: substitute.Name,
			Ratio:                    rule.Ratio,
			QualityScore:             rule.QualityScore,
			Notes:                    rule.Notes,
		}, nil
	}

	return nil, nil
}

// MatchAllRecipes matches every stored recipe against current
// inventory and buckets the results. Buckets are mutually exclusive
// and evaluated in fixed priority order; a recipe with 4+ missing
// ingredients and no substitution lands in no bucket. Recipes with
// malformed data are skipped but still counted in
// TotalRecipesChecked.
func (m *RecipeMatcher) MatchAllRecipes(ctx context.Context) (*models.MatchReport, error) {
	inventory, err := m.AggregateInventory(ctx)
	if err != nil {
		return nil, err
	}

	recipes, err := m.recipes.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	report := &models.MatchReport{
		CanMakeNow:          []models.RecipeMatch{},
		MissingOne:          []models.RecipeMatch{},
		MissingFew:          []models.RecipeMatch{},
		WithSubstitutions:   []models.RecipeMatch{},
		TotalRecipesChecked: len(recipes),
	}

	for _, recipe := range recipes {
		match, err := m.MatchRecipe(ctx, recipe, inventory)
		if err != nil {
			log.Printf("Skipping recipe %q: %v", recipe.Title, err)
			continue
		}

		missing := len(match.MissingIngredients)
		switch {
		case match.AvailabilityPercent == 100:
			report.CanMakeNow = append(report.CanMakeNow, match)
		case missing == 1:
			report.MissingOne = append(report.MissingOne, match)
		case missing >= 2 && missing <= 3:
			report.MissingFew = append(report.MissingFew, match)
		case len(match.SuggestedSubstitutions) > 0:
			report.WithSubstitutions = append(report.WithSubstitutions, match)
		}
	}

	log.Printf("Recipe matching complete: %d can make now, %d missing one, %d missing few, %d with substitutions",
		len(report.CanMakeNow), len(report.MissingOne), len(report.MissingFew), len(report.WithSubstitutions))

	return report, nil
}

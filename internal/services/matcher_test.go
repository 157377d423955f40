package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenmitt/pantry-track/internal/models"
)

type fakeInventoryStore struct {
	items []models.ItemWithProduct
}

func (s *fakeInventoryStore) ListItemsWithProducts(_ context.Context) ([]models.ItemWithProduct, error) {
	return s.items, nil
}

type fakeSubstitutionStore struct {
	rules map[int][]models.Substitution
}

func (s *fakeSubstitutionStore) ListSubstitutionsFor(_ context.Context, ingredientID int) ([]models.Substitution, error) {
	return s.rules[ingredientID], nil
}

type fakeRecipeStore struct {
	recipes     []models.Recipe
	ingredients map[int][]models.RecipeIngredient
}

func (s *fakeRecipeStore) ListRecipes(_ context.Context) ([]models.Recipe, error) {
	return s.recipes, nil
}

func (s *fakeRecipeStore) GetRecipeIngredients(_ context.Context, recipeID int) ([]models.RecipeIngredient, error) {
	return s.ingredients[recipeID], nil
}

func stockedItem(productName string, packageQty float64, packageUnit string, qty float64) models.ItemWithProduct {
	return models.ItemWithProduct{
		Item: models.Item{Qty: qty, Location: models.LocationCupboard},
		Product: models.ProductReference{
			Name:            productName,
			PackageQuantity: packageQty,
			PackageUnit:     packageUnit,
		},
	}
}

// matcherFixture wires a matcher over in-memory stores with flour,
// milk, and margarine in stock and butter known but absent
func matcherFixture(t *testing.T) (*RecipeMatcher, *fakeIdentityStore, *fakeSubstitutionStore, *fakeRecipeStore) {
	t.Helper()
	ctx := context.Background()

	ids := newFakeIdentityStore()
	flour, _ := ids.UpsertIngredient(ctx, "flour", "flour")
	milk, _ := ids.UpsertIngredient(ctx, "milk", "milk")
	butter, _ := ids.UpsertIngredient(ctx, "butter", "butter")
	margarine, _ := ids.UpsertIngredient(ctx, "margarine", "margarine")

	require.NoError(t, ids.UpsertAlias(ctx, "bakers flour", flour.ID))
	require.NoError(t, ids.UpsertAlias(ctx, "whole milk", milk.ID))
	require.NoError(t, ids.UpsertAlias(ctx, "margarine spread", margarine.ID))

	inv := &fakeInventoryStore{items: []models.ItemWithProduct{
		stockedItem("Bakers Flour", 1000, "g", 1),
		stockedItem("Whole Milk", 1000, "ml", 1),
		stockedItem("Margarine Spread", 500, "g", 1),
	}}

	subs := &fakeSubstitutionStore{rules: map[int][]models.Substitution{
		butter.ID: {{
			ID:                     1,
			OriginalIngredientID:   butter.ID,
			SubstituteIngredientID: margarine.ID,
			Ratio:                  1.0,
			QualityScore:           8,
		}},
	}}

	recipes := &fakeRecipeStore{ingredients: map[int][]models.RecipeIngredient{}}

	return NewRecipeMatcher(ids, inv, subs, recipes), ids, subs, recipes
}

func TestAggregateInventory(t *testing.T) {
	matcher, ids, _, _ := matcherFixture(t)
	ctx := context.Background()

	inventory, err := matcher.AggregateInventory(ctx)
	require.NoError(t, err)
	require.Len(t, inventory, 3)

	flour, _ := ids.GetIngredientByName(ctx, "flour")
	line := inventory[flour.ID]
	require.NotNil(t, line)
	assert.InDelta(t, 1000, line.TotalQuantity, 0.001)
	assert.Equal(t, BaseUnitGram, line.BaseUnit)
	require.Len(t, line.Products, 1)
	assert.Equal(t, "Bakers Flour", line.Products[0].ProductName)
}

func TestAggregateInventorySumsContributions(t *testing.T) {
	matcher, ids, _, _ := matcherFixture(t)
	ctx := context.Background()

	flour, _ := ids.GetIngredientByName(ctx, "flour")
	require.NoError(t, ids.UpsertAlias(ctx, "bread flour", flour.ID))
	matcher.inventory.(*fakeInventoryStore).items = append(
		matcher.inventory.(*fakeInventoryStore).items,
		stockedItem("Bread Flour", 500, "g", 2),
	)

	inventory, err := matcher.AggregateInventory(ctx)
	require.NoError(t, err)

	line := inventory[flour.ID]
	require.NotNil(t, line)
	assert.InDelta(t, 2000, line.TotalQuantity, 0.001)
	assert.Len(t, line.Products, 2)
}

func TestAggregateInventoryExcludesUnaliasedProducts(t *testing.T) {
	matcher, _, _, _ := matcherFixture(t)
	matcher.inventory.(*fakeInventoryStore).items = append(
		matcher.inventory.(*fakeInventoryStore).items,
		stockedItem("Mystery Snack", 1, "unit", 3),
	)

	inventory, err := matcher.AggregateInventory(context.Background())
	require.NoError(t, err)
	assert.Len(t, inventory, 3, "unaliased product must not create a line")
}

func TestAggregateInventoryDropsUnitMismatch(t *testing.T) {
	matcher, ids, _, _ := matcherFixture(t)
	ctx := context.Background()

	// Second milk product measured by weight disagrees with the ml line
	milk, _ := ids.GetIngredientByName(ctx, "milk")
	require.NoError(t, ids.UpsertAlias(ctx, "powdered milk", milk.ID))
	matcher.inventory.(*fakeInventoryStore).items = append(
		matcher.inventory.(*fakeInventoryStore).items,
		stockedItem("Powdered Milk", 400, "g", 1),
	)

	inventory, err := matcher.AggregateInventory(ctx)
	require.NoError(t, err)

	line := inventory[milk.ID]
	require.NotNil(t, line)
	assert.InDelta(t, 1000, line.TotalQuantity, 0.001, "mismatched contribution must be dropped, not summed")
	assert.Len(t, line.Products, 1)
}

func TestMatchRecipeExact(t *testing.T) {
	matcher, ids, _, recipes := matcherFixture(t)
	ctx := context.Background()

	flour, _ := ids.GetIngredientByName(ctx, "flour")
	milk, _ := ids.GetIngredientByName(ctx, "milk")

	recipe := models.Recipe{ID: 1, Title: "Pancakes"}
	recipes.ingredients[1] = []models.RecipeIngredient{
		{RecipeID: 1, CanonicalIngredientID: flour.ID, Quantity: 500, Unit: "g"},
		{RecipeID: 1, CanonicalIngredientID: milk.ID, Quantity: 240, Unit: "ml"},
	}

	inventory, err := matcher.AggregateInventory(ctx)
	require.NoError(t, err)

	match, err := matcher.MatchRecipe(ctx, recipe, inventory)
	require.NoError(t, err)
	assert.Equal(t, models.MatchTypeExact, match.MatchType)
	assert.InDelta(t, 100, match.AvailabilityPercent, 0.001)
	assert.Empty(t, match.MissingIngredients)

	require.Len(t, match.IngredientAvailability, 2)
	assert.True(t, match.IngredientAvailability[0].IsSufficient)
	assert.InDelta(t, 1000, match.IngredientAvailability[0].AvailableQuantity, 0.001)
}

func TestMatchRecipeInsufficientQuantity(t *testing.T) {
	matcher, ids, _, recipes := matcherFixture(t)
	ctx := context.Background()

	flour, _ := ids.GetIngredientByName(ctx, "flour")

	recipe := models.Recipe{ID: 1, Title: "Bread"}
	recipes.ingredients[1] = []models.RecipeIngredient{
		{RecipeID: 1, CanonicalIngredientID: flour.ID, Quantity: 2, Unit: "kg"},
	}

	inventory, err := matcher.AggregateInventory(ctx)
	require.NoError(t, err)

	match, err := matcher.MatchRecipe(ctx, recipe, inventory)
	require.NoError(t, err)
	assert.Equal(t, models.MatchTypeMissing, match.MatchType)
	assert.Equal(t, []string{"flour"}, match.MissingIngredients)
	assert.False(t, match.IngredientAvailability[0].IsSufficient)
}

func TestMatchRecipeUnitMismatchIsUnavailable(t *testing.T) {
	matcher, ids, _, recipes := matcherFixture(t)
	ctx := context.Background()

	// Recipe wants milk by count; inventory holds it in ml
	milk, _ := ids.GetIngredientByName(ctx, "milk")

	recipe := models.Recipe{ID: 1, Title: "Odd Recipe"}
	recipes.ingredients[1] = []models.RecipeIngredient{
		{RecipeID: 1, CanonicalIngredientID: milk.ID, Quantity: 2, Unit: "unit"},
	}

	inventory, err := matcher.AggregateInventory(ctx)
	require.NoError(t, err)

	match, err := matcher.MatchRecipe(ctx, recipe, inventory)
	require.NoError(t, err)
	assert.False(t, match.IngredientAvailability[0].IsSufficient)
	assert.Zero(t, match.IngredientAvailability[0].AvailableQuantity)
	assert.Empty(t, match.SuggestedSubstitutions, "mismatched units must not trigger substitution lookup")
}

func TestMatchRecipeSuggestsSubstitution(t *testing.T) {
	matcher, ids, _, recipes := matcherFixture(t)
	ctx := context.Background()

	flour, _ := ids.GetIngredientByName(ctx, "flour")
	milk, _ := ids.GetIngredientByName(ctx, "milk")
	butter, _ := ids.GetIngredientByName(ctx, "butter")

	recipe := models.Recipe{ID: 1, Title: "Cookies"}
	recipes.ingredients[1] = []models.RecipeIngredient{
		{RecipeID: 1, CanonicalIngredientID: flour.ID, Quantity: 300, Unit: "g"},
		{RecipeID: 1, CanonicalIngredientID: milk.ID, Quantity: 100, Unit: "ml"},
		{RecipeID: 1, CanonicalIngredientID: butter.ID, Quantity: 200, Unit: "g"},
	}

	inventory, err := matcher.AggregateInventory(ctx)
	require.NoError(t, err)

	match, err := matcher.MatchRecipe(ctx, recipe, inventory)
	require.NoError(t, err)
	assert.Equal(t, models.MatchTypeWithSubstitutions, match.MatchType)
	assert.InDelta(t, 66.67, match.AvailabilityPercent, 0.01)
	assert.Equal(t, []string{"butter"}, match.MissingIngredients)

	require.Len(t, match.SuggestedSubstitutions, 1)
	sub := match.SuggestedSubstitutions[0]
	assert.Equal(t, "butter", sub.OriginalIngredientName)
	assert.Equal(t, "margarine", sub.SubstituteIngredientName)
	assert.Equal(t, 8, sub.QualityScore)
}

func TestFindSubstitutionSkipsLowQualityAndOutOfStock(t *testing.T) {
	matcher, ids, subs, recipes := matcherFixture(t)
	ctx := context.Background()

	butter, _ := ids.GetIngredientByName(ctx, "butter")
	lard, _ := ids.UpsertIngredient(ctx, "lard", "lard")
	margarine, _ := ids.GetIngredientByName(ctx, "margarine")

	// Low-quality rule first, then an out-of-stock substitute, then the
	// acceptable one: stored order with a quality floor of 5
	subs.rules[butter.ID] = []models.Substitution{
		{SubstituteIngredientID: margarine.ID, QualityScore: 4, Ratio: 1},
		{SubstituteIngredientID: lard.ID, QualityScore: 9, Ratio: 1},
		{SubstituteIngredientID: margarine.ID, QualityScore: 8, Ratio: 1},
	}

	recipe := models.Recipe{ID: 1, Title: "Pastry"}
	recipes.ingredients[1] = []models.RecipeIngredient{
		{RecipeID: 1, CanonicalIngredientID: butter.ID, Quantity: 100, Unit: "g"},
	}

	inventory, err := matcher.AggregateInventory(ctx)
	require.NoError(t, err)

	match, err := matcher.MatchRecipe(ctx, recipe, inventory)
	require.NoError(t, err)
	require.Len(t, match.SuggestedSubstitutions, 1)
	assert.Equal(t, "margarine", match.SuggestedSubstitutions[0].SubstituteIngredientName)
	assert.Equal(t, 8, match.SuggestedSubstitutions[0].QualityScore)
}

func TestMatchRecipeMissingCanonicalIsHardError(t *testing.T) {
	matcher, _, _, recipes := matcherFixture(t)
	ctx := context.Background()

	recipe := models.Recipe{ID: 1, Title: "Ghost Recipe"}
	recipes.ingredients[1] = []models.RecipeIngredient{
		{RecipeID: 1, CanonicalIngredientID: 999, Quantity: 1, Unit: "unit"},
	}

	inventory, err := matcher.AggregateInventory(ctx)
	require.NoError(t, err)

	_, err = matcher.MatchRecipe(ctx, recipe, inventory)
	assert.Error(t, err)
}

func TestMatchAllRecipesBuckets(t *testing.T) {
	matcher, ids, _, recipes := matcherFixture(t)
	ctx := context.Background()

	flour, _ := ids.GetIngredientByName(ctx, "flour")
	milk, _ := ids.GetIngredientByName(ctx, "milk")
	butter, _ := ids.GetIngredientByName(ctx, "butter")
	saffron, _ := ids.UpsertIngredient(ctx, "saffron", "saffron")
	truffle, _ := ids.UpsertIngredient(ctx, "truffle", "truffle")
	caviar, _ := ids.UpsertIngredient(ctx, "caviar", "caviar")
	quail, _ := ids.UpsertIngredient(ctx, "quail", "quail")

	recipes.recipes = []models.Recipe{
		{ID: 1, Title: "Pancakes"},
		{ID: 2, Title: "Cookies"},
		{ID: 3, Title: "Casserole"},
		{ID: 4, Title: "Feast"},
		{ID: 5, Title: "Ghost"},
	}
	recipes.ingredients = map[int][]models.RecipeIngredient{
		// Fully stocked
		1: {
			{CanonicalIngredientID: flour.ID, Quantity: 500, Unit: "g"},
			{CanonicalIngredientID: milk.ID, Quantity: 240, Unit: "ml"},
		},
		// One missing, substitution available: missing-one wins over
		// the substitution bucket
		2: {
			{CanonicalIngredientID: flour.ID, Quantity: 300, Unit: "g"},
			{CanonicalIngredientID: butter.ID, Quantity: 200, Unit: "g"},
		},
		// Two missing
		3: {
			{CanonicalIngredientID: flour.ID, Quantity: 300, Unit: "g"},
			{CanonicalIngredientID: saffron.ID, Quantity: 1, Unit: "g"},
			{CanonicalIngredientID: truffle.ID, Quantity: 1, Unit: "g"},
		},
		// Four missing, no substitutions: lands in no bucket
		4: {
			{CanonicalIngredientID: saffron.ID, Quantity: 1, Unit: "g"},
			{CanonicalIngredientID: truffle.ID, Quantity: 1, Unit: "g"},
			{CanonicalIngredientID: caviar.ID, Quantity: 1, Unit: "g"},
			{CanonicalIngredientID: quail.ID, Quantity: 4, Unit: "unit"},
		},
		// Broken requirement: skipped but still counted
		5: {
			{CanonicalIngredientID: 999, Quantity: 1, Unit: "unit"},
		},
	}

	report, err := matcher.MatchAllRecipes(ctx)
	require.NoError(t, err)

	assert.Equal(t, 5, report.TotalRecipesChecked)

	require.Len(t, report.CanMakeNow, 1)
	assert.Equal(t, "Pancakes", report.CanMakeNow[0].RecipeTitle)

	require.Len(t, report.MissingOne, 1)
	assert.Equal(t, "Cookies", report.MissingOne[0].RecipeTitle)
	assert.Len(t, report.MissingOne[0].SuggestedSubstitutions, 1)

	require.Len(t, report.MissingFew, 1)
	assert.Equal(t, "Casserole", report.MissingFew[0].RecipeTitle)

	assert.Empty(t, report.WithSubstitutions)
}

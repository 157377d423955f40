package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenmitt/pantry-track/internal/models"
)

// fakeIdentityStore is an in-memory IdentityStore for tests
type fakeIdentityStore struct {
	nextID      int
	ingredients map[int]*models.Ingredient
	aliases     map[string]int
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{
		nextID:      1,
		ingredients: make(map[int]*models.Ingredient),
		aliases:     make(map[string]int),
	}
}

func (s *fakeIdentityStore) GetIngredientByName(_ context.Context, name string) (*models.Ingredient, error) {
	for _, ing := range s.ingredients {
		if ing.Name == name || ing.NormalizedName == name {
			return ing, nil
		}
	}
	return nil, nil
}

func (s *fakeIdentityStore) GetIngredientByID(_ context.Context, id int) (*models.Ingredient, error) {
	if ing, ok := s.ingredients[id]; ok {
		return ing, nil
	}
	return nil, nil
}

func (s *fakeIdentityStore) GetAliasByText(_ context.Context, alias string) (*models.IngredientAlias, error) {
	if id, ok := s.aliases[alias]; ok {
		return &models.IngredientAlias{Alias: alias, IngredientID: id}, nil
	}
	return nil, nil
}

func (s *fakeIdentityStore) UpsertIngredient(ctx context.Context, name, normalizedName string) (*models.Ingredient, error) {
	if existing, _ := s.GetIngredientByName(ctx, name); existing != nil {
		return existing, nil
	}
	ing := &models.Ingredient{
		ID:             s.nextID,
		Name:           name,
		NormalizedName: normalizedName,
	}
	s.ingredients[ing.ID] = ing
	s.nextID++
	return ing, nil
}

func (s *fakeIdentityStore) UpsertAlias(_ context.Context, alias string, ingredientID int) error {
	if _, ok := s.aliases[alias]; !ok {
		s.aliases[alias] = ingredientID
	}
	return nil
}

func (s *fakeIdentityStore) SetIngredientWeight(_ context.Context, ingredientID int, grams float64, source string) error {
	ing, ok := s.ingredients[ingredientID]
	if !ok {
		return nil
	}
	ing.AvgWeightGrams = &grams
	ing.WeightSource = &source
	return nil
}

func TestResolveCreatesNewIdentity(t *testing.T) {
	store := newFakeIdentityStore()
	resolver := NewIngredientResolver(store)

	ing, err := resolver.Resolve(context.Background(), "saffron")
	require.NoError(t, err)
	assert.Equal(t, "saffron", ing.Name)
	assert.Equal(t, "saffron", ing.NormalizedName)

	// Resolving again returns the same identity
	again, err := resolver.Resolve(context.Background(), "saffron")
	require.NoError(t, err)
	assert.Equal(t, ing.ID, again.ID)
}

func TestResolveExactMatchWins(t *testing.T) {
	store := newFakeIdentityStore()
	existing, _ := store.UpsertIngredient(context.Background(), "flour", "flour")
	resolver := NewIngredientResolver(store)

	ing, err := resolver.Resolve(context.Background(), "flour")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, ing.ID)
}

func TestResolveThroughAlias(t *testing.T) {
	store := newFakeIdentityStore()
	canonical, _ := store.UpsertIngredient(context.Background(), "green onion", "green onion")
	require.NoError(t, store.UpsertAlias(context.Background(), "salad onion", canonical.ID))
	resolver := NewIngredientResolver(store)

	ing, err := resolver.Resolve(context.Background(), "salad onion")
	require.NoError(t, err)
	assert.Equal(t, canonical.ID, ing.ID)
}

func TestResolveThroughSeedTable(t *testing.T) {
	store := newFakeIdentityStore()
	resolver := NewIngredientResolver(store)

	// "scallions" is a seeded alias of "green onion"
	ing, err := resolver.Resolve(context.Background(), "scallions")
	require.NoError(t, err)
	assert.Equal(t, "green onion", ing.Name)

	// The hit is recorded as an alias for the next lookup
	alias, err := store.GetAliasByText(context.Background(), "scallions")
	require.NoError(t, err)
	require.NotNil(t, alias)
	assert.Equal(t, ing.ID, alias.IngredientID)

	// A different seeded alias of the same canonical converges
	other, err := resolver.Resolve(context.Background(), "spring onions")
	require.NoError(t, err)
	assert.Equal(t, ing.ID, other.ID)
}

func TestResolveSingularizesAgainstWeightTable(t *testing.T) {
	store := newFakeIdentityStore()
	resolver := NewIngredientResolver(store)

	// "zucchinis" is not seeded; its singular "zucchini" is in the
	// curated weight table
	ing, err := resolver.Resolve(context.Background(), "zucchinis")
	require.NoError(t, err)
	assert.Equal(t, "zucchini", ing.Name)

	alias, err := store.GetAliasByText(context.Background(), "zucchinis")
	require.NoError(t, err)
	require.NotNil(t, alias)
	assert.Equal(t, ing.ID, alias.IngredientID)
}

func TestResolveSingularizesAgainstExistingIdentity(t *testing.T) {
	store := newFakeIdentityStore()
	existing, _ := store.UpsertIngredient(context.Background(), "cranberry", "cranberry")
	resolver := NewIngredientResolver(store)

	ing, err := resolver.Resolve(context.Background(), "cranberries")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, ing.ID)
}

func TestResolveFallsThroughToNewIdentity(t *testing.T) {
	store := newFakeIdentityStore()
	resolver := NewIngredientResolver(store)

	// Plural with no seed, no weight entry, no existing singular:
	// stored as-is
	ing, err := resolver.Resolve(context.Background(), "capers")
	require.NoError(t, err)
	assert.Equal(t, "capers", ing.Name)
}

func TestResolveEmptyNameErrors(t *testing.T) {
	resolver := NewIngredientResolver(newFakeIdentityStore())

	_, err := resolver.Resolve(context.Background(), "   ")
	assert.Error(t, err)
}

func TestSingularCandidates(t *testing.T) {
	assert.Equal(t, []string{"cherry"}, singularCandidates("cherries"))
	// -oes words also produce the naive trailing-s form, lower priority
	assert.Equal(t, []string{"tomato", "tomatoe"}, singularCandidates("tomatoes"))
	assert.Equal(t, []string{"carrot"}, singularCandidates("carrots"))
	assert.Equal(t, []string{"chicken breast"}, singularCandidates("chicken breasts"))
	// -ss words are not de-pluralized
	assert.Empty(t, singularCandidates("swiss"))
	assert.Empty(t, singularCandidates(""))
}

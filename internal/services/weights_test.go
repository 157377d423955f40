package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenmitt/pantry-track/internal/models"
)

// fakeWeightProvider returns a fixed per-unit weight for every lookup
type fakeWeightProvider struct {
	grams  float64
	ok     bool
	called int
}

func (p *fakeWeightProvider) LookupUnitWeight(_ context.Context, _ string) (float64, bool) {
	p.called++
	return p.grams, p.ok
}

func TestExtractWeightHint(t *testing.T) {
	qty, unit, ok := ExtractWeightHint("2 chicken breasts (about 1.5 lb)")
	require.True(t, ok)
	assert.InDelta(t, 1.5, qty, 0.001)
	assert.Equal(t, "lb", unit)

	qty, unit, ok = ExtractWeightHint("680g ground beef")
	require.True(t, ok)
	assert.InDelta(t, 680, qty, 0.001)
	assert.Equal(t, "g", unit)

	_, _, ok = ExtractWeightHint("3 large eggs")
	assert.False(t, ok)

	_, _, ok = ExtractWeightHint("")
	assert.False(t, ok)
}

func TestEstimateUsesCachedWeight(t *testing.T) {
	store := newFakeIdentityStore()
	provider := &fakeWeightProvider{grams: 999, ok: true}
	estimator := NewWeightEstimator(store, provider)

	cached := 340.0
	source := WeightSourceManual
	ingredient := &models.Ingredient{ID: 1, Name: "chicken breast", AvgWeightGrams: &cached, WeightSource: &source}

	result, ok := estimator.Estimate(context.Background(), ingredient, 2, "2 chicken breasts")
	require.True(t, ok)
	assert.InDelta(t, 680, result.Quantity, 0.001)
	assert.Equal(t, BaseUnitGram, result.Unit)
	assert.Equal(t, WeightSourceManual, result.Source)
	assert.Zero(t, provider.called, "cached weight must short-circuit the provider")
}

func TestEstimateFromRecipeTextHint(t *testing.T) {
	store := newFakeIdentityStore()
	ingredient, _ := store.UpsertIngredient(context.Background(), "pork shoulder", "pork shoulder")
	estimator := NewWeightEstimator(store, nil)

	result, ok := estimator.Estimate(context.Background(), ingredient, 2, "2 pork shoulders (about 3 lb)")
	require.True(t, ok)
	// 3 lb = 1360.77g total, cached per unit as half that
	assert.InDelta(t, 1360.77, result.Quantity, 0.01)
	assert.Equal(t, WeightSourceRecipeText, result.Source)

	require.NotNil(t, ingredient.AvgWeightGrams)
	assert.InDelta(t, 680.385, *ingredient.AvgWeightGrams, 0.01)
	require.NotNil(t, ingredient.WeightSource)
	assert.Equal(t, WeightSourceRecipeText, *ingredient.WeightSource)
}

func TestEstimateFromManualTable(t *testing.T) {
	store := newFakeIdentityStore()
	ingredient, _ := store.UpsertIngredient(context.Background(), "carrot", "carrot")
	estimator := NewWeightEstimator(store, nil)

	result, ok := estimator.Estimate(context.Background(), ingredient, 3, "3 carrots")
	require.True(t, ok)
	assert.InDelta(t, 180, result.Quantity, 0.001)
	assert.Equal(t, BaseUnitGram, result.Unit)
	assert.Equal(t, WeightSourceManual, result.Source)
}

func TestEstimateFromProvider(t *testing.T) {
	store := newFakeIdentityStore()
	ingredient, _ := store.UpsertIngredient(context.Background(), "parsnip", "parsnip")
	provider := &fakeWeightProvider{grams: 90, ok: true}
	estimator := NewWeightEstimator(store, provider)

	result, ok := estimator.Estimate(context.Background(), ingredient, 2, "2 parsnips")
	require.True(t, ok)
	assert.InDelta(t, 180, result.Quantity, 0.001)
	assert.Equal(t, WeightSourceExternal, result.Source)
	assert.Equal(t, 1, provider.called)

	// The weight is cached; a second estimate skips the provider
	result, ok = estimator.Estimate(context.Background(), ingredient, 1, "1 parsnip")
	require.True(t, ok)
	assert.InDelta(t, 90, result.Quantity, 0.001)
	assert.Equal(t, 1, provider.called)
}

func TestEstimateNoTierProducesData(t *testing.T) {
	store := newFakeIdentityStore()
	ingredient, _ := store.UpsertIngredient(context.Background(), "star anise", "star anise")
	provider := &fakeWeightProvider{ok: false}
	estimator := NewWeightEstimator(store, provider)

	_, ok := estimator.Estimate(context.Background(), ingredient, 2, "2 star anise")
	assert.False(t, ok)
	assert.Nil(t, ingredient.AvgWeightGrams)
}

func TestEstimateRejectsNonPositiveCount(t *testing.T) {
	store := newFakeIdentityStore()
	ingredient, _ := store.UpsertIngredient(context.Background(), "carrot", "carrot")
	estimator := NewWeightEstimator(store, nil)

	_, ok := estimator.Estimate(context.Background(), ingredient, 0, "carrots")
	assert.False(t, ok)
}

package models

// InventoryLine is the aggregated stock for one ingredient, built
// fresh for each matching run. Never persisted.
type InventoryLine struct {
	IngredientID   int                   `json:"ingredient_id"`
	IngredientName string                `json:"ingredient_name"`
	TotalQuantity  float64               `json:"total_quantity"`
	BaseUnit       string                `json:"base_unit"` // "g", "ml", or "unit"
	Products       []ContributingProduct `json:"products"`
}

// ContributingProduct records which stocked product fed an inventory line
type ContributingProduct struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
}

// IngredientAvailability is the per-requirement verdict in a match
type IngredientAvailability struct {
	IngredientID      int     `json:"ingredient_id"`
	IngredientName    string  `json:"ingredient_name"`
	RequiredQuantity  float64 `json:"required_quantity"`
	AvailableQuantity float64 `json:"available_quantity"`
	Unit              string  `json:"unit"`
	IsSufficient      bool    `json:"is_sufficient"`
}

// SubstitutionSuggestion proposes an in-stock replacement for a
// missing ingredient. The substitute's own quantity is not checked
// against the ratio-adjusted requirement; this is a known v1 limit.
type SubstitutionSuggestion struct {
	OriginalIngredientID     int     `json:"original_ingredient_id"`
	OriginalIngredientName   string  `json:"original_ingredient_name"`
	SubstituteIngredientID   int     `json:"substitute_ingredient_id"`
	SubstituteIngredientName string  `json:"substitute_ingredient_name"`
	Ratio                    float64 `json:"ratio"`
	QualityScore             int     `json:"quality_score"`
	Notes                    *string `json:"notes,omitempty"`
}

// Match type values
const (
	MatchTypeExact             = "exact"
	MatchTypeWithSubstitutions = "with_substitutions"
	MatchTypeMissing           = "missing_ingredients"
)

// RecipeMatch is the result of matching one recipe against inventory
type RecipeMatch struct {
	RecipeID               int                      `json:"recipe_id"`
	RecipeTitle            string                   `json:"recipe_title"`
	MatchType              string                   `json:"match_type"`
	AvailabilityPercent    float64                  `json:"availability_percent"`
	IngredientAvailability []IngredientAvailability `json:"ingredient_availability"`
	MissingIngredients     []string                 `json:"missing_ingredients"`
	SuggestedSubstitutions []SubstitutionSuggestion `json:"suggested_substitutions"`
}

// MatchReport buckets all matched recipes by feasibility. Buckets are
// mutually exclusive; a recipe with 4+ missing ingredients and no
// substitution lands in no bucket at all.
type MatchReport struct {
	CanMakeNow          []RecipeMatch `json:"can_make_now"`
	MissingOne          []RecipeMatch `json:"missing_one"`
	MissingFew          []RecipeMatch `json:"missing_few"`
	WithSubstitutions   []RecipeMatch `json:"with_substitutions"`
	TotalRecipesChecked int           `json:"total_recipes_checked"`
}

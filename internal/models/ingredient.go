package models

import (
	"time"
)

// Ingredient is the canonical identity a family of ingredient text
// variants resolves to. NormalizedName is unique across the table.
type Ingredient struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"`
	AvgWeightGrams *float64  `json:"avg_weight_grams,omitempty"`
	WeightSource   *string   `json:"weight_source,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// IngredientAlias maps one learned text variant to an ingredient.
// Alias text is unique across the alias table.
type IngredientAlias struct {
	ID           int    `json:"id"`
	Alias        string `json:"alias"`
	IngredientID int    `json:"ingredient_id"`
}

// IngredientWithAliases is the admin listing shape
type IngredientWithAliases struct {
	Ingredient
	Aliases []string `json:"aliases"`
}

// Substitution is a directed substitution rule: the original
// ingredient can be replaced by the substitute at the given ratio.
type Substitution struct {
	ID                     int     `json:"id"`
	OriginalIngredientID   int     `json:"original_ingredient_id"`
	SubstituteIngredientID int     `json:"substitute_ingredient_id"`
	Ratio                  float64 `json:"ratio"`
	QualityScore           int     `json:"quality_score"`
	Notes                  *string `json:"notes,omitempty"`
}

// CreateSubstitutionRequest is the request body for creating a substitution rule
type CreateSubstitutionRequest struct {
	OriginalIngredientID   int     `json:"original_ingredient_id"`
	SubstituteIngredientID int     `json:"substitute_ingredient_id"`
	Ratio                  float64 `json:"ratio"`
	QualityScore           int     `json:"quality_score"`
	Notes                  *string `json:"notes,omitempty"`
}

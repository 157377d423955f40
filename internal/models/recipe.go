package models

import (
	"time"
)

// Recipe is a saved recipe with its instruction steps
type Recipe struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Instructions []string  `json:"instructions"`
	SourceURL    *string   `json:"source_url,omitempty"`
	ImageKey     *string   `json:"image_key,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecipeIngredient links a recipe to a canonical ingredient.
// CanonicalIngredientID is resolved once at import time and not
// re-resolved if the alias table changes later.
type RecipeIngredient struct {
	ID                    int     `json:"id"`
	RecipeID              int     `json:"recipe_id"`
	IngredientText        string  `json:"ingredient_text"`
	CanonicalIngredientID int     `json:"canonical_ingredient_id"`
	Quantity              float64 `json:"quantity"`
	Unit                  string  `json:"unit"`
}

// RecipeWithIngredients is the detail response shape
type RecipeWithIngredients struct {
	Recipe      Recipe             `json:"recipe"`
	Ingredients []RecipeIngredient `json:"ingredients"`
}

// ParsedIngredientLine is one raw recipe line split into its parts
type ParsedIngredientLine struct {
	Original string  `json:"original"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Name     string  `json:"name"`
}

// CreateRecipeRequest imports a recipe from already-extracted text.
// IngredientLines are raw lines like "2 cups all-purpose flour".
type CreateRecipeRequest struct {
	Title           string   `json:"title"`
	IngredientLines []string `json:"ingredient_lines"`
	Instructions    []string `json:"instructions,omitempty"`
	SourceURL       *string  `json:"source_url,omitempty"`
}

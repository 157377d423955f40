package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ovenmitt/pantry-track/internal/models"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
)

// ListRecipes returns all saved recipes
func (db *DB) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, title, instructions, source_url, image_key, created_at
		FROM recipes
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var r models.Recipe
		err := rows.Scan(&r.ID, &r.Title, &r.Instructions, &r.SourceURL, &r.ImageKey, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		if r.Instructions == nil {
			r.Instructions = []string{}
		}
		recipes = append(recipes, r)
	}

	return recipes, nil
}

// GetRecipeByID retrieves a recipe
func (db *DB) GetRecipeByID(ctx context.Context, id int) (*models.Recipe, error) {
	r := &models.Recipe{}

	err := db.Pool.QueryRow(ctx, `
		SELECT id, title, instructions, source_url, image_key, created_at
		FROM recipes
		WHERE id = $1
	`, id).Scan(&r.ID, &r.Title, &r.Instructions, &r.SourceURL, &r.ImageKey, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}

	return r, nil
}

// GetRecipeIngredients returns the resolved requirements for a recipe
func (db *DB) GetRecipeIngredients(ctx context.Context, recipeID int) ([]models.RecipeIngredient, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, recipe_id, ingredient_text, canonical_ingredient_id, quantity, unit
		FROM recipe_ingredients
		WHERE recipe_id = $1
		ORDER BY id ASC
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []models.RecipeIngredient
	for rows.Next() {
		var ri models.RecipeIngredient
		err := rows.Scan(
			&ri.ID, &ri.RecipeID, &ri.IngredientText,
			&ri.CanonicalIngredientID, &ri.Quantity, &ri.Unit,
		)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ri)
	}

	return ingredients, nil
}

// CreateRecipe inserts a recipe and its resolved requirements in one
// transaction
func (db *DB) CreateRecipe(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient) (*models.RecipeWithIngredients, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	result := &models.RecipeWithIngredients{}

	err = tx.QueryRow(ctx, `
		INSERT INTO recipes (title, instructions, source_url)
		VALUES ($1, $2, $3)
		RETURNING id, title, instructions, source_url, image_key, created_at
	`, recipe.Title, recipe.Instructions, recipe.SourceURL).Scan(
		&result.Recipe.ID, &result.Recipe.Title, &result.Recipe.Instructions,
		&result.Recipe.SourceURL, &result.Recipe.ImageKey, &result.Recipe.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if result.Recipe.Instructions == nil {
		result.Recipe.Instructions = []string{}
	}

	result.Ingredients = make([]models.RecipeIngredient, 0, len(ingredients))
	for _, ri := range ingredients {
		var inserted models.RecipeIngredient
		err := tx.QueryRow(ctx, `
			INSERT INTO recipe_ingredients
				(recipe_id, ingredient_text, canonical_ingredient_id, quantity, unit)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, recipe_id, ingredient_text, canonical_ingredient_id, quantity, unit
		`, result.Recipe.ID, ri.IngredientText, ri.CanonicalIngredientID, ri.Quantity, ri.Unit).Scan(
			&inserted.ID, &inserted.RecipeID, &inserted.IngredientText,
			&inserted.CanonicalIngredientID, &inserted.Quantity, &inserted.Unit,
		)
		if err != nil {
			return nil, err
		}
		result.Ingredients = append(result.Ingredients, inserted)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// SetRecipeImageKey records the object storage key for a recipe photo
func (db *DB) SetRecipeImageKey(ctx context.Context, recipeID int, key string) error {
	tag, err := db.Pool.Exec(ctx,
		"UPDATE recipes SET image_key = $1 WHERE id = $2", key, recipeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// DeleteRecipe removes a recipe and its requirements
func (db *DB) DeleteRecipe(ctx context.Context, id int) error {
	tag, err := db.Pool.Exec(ctx, "DELETE FROM recipes WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

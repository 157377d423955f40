package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ovenmitt/pantry-track/internal/models"
)

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
)

// GetIngredientByName retrieves an ingredient whose name or
// normalized_name matches the given text. Returns (nil, nil) when no
// row matches so callers can fall through to the next resolution tier.
func (db *DB) GetIngredientByName(ctx context.Context, name string) (*models.Ingredient, error) {
	ing := &models.Ingredient{}

	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, normalized_name, avg_weight_grams, weight_source, created_at
		FROM ingredient_references
		WHERE name = $1 OR normalized_name = $1
	`, name).Scan(
		&ing.ID, &ing.Name, &ing.NormalizedName,
		&ing.AvgWeightGrams, &ing.WeightSource, &ing.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return ing, nil
}

// GetIngredientByID retrieves an ingredient by ID. Returns (nil, nil)
// when no row matches.
func (db *DB) GetIngredientByID(ctx context.Context, id int) (*models.Ingredient, error) {
	ing := &models.Ingredient{}

	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, normalized_name, avg_weight_grams, weight_source, created_at
		FROM ingredient_references
		WHERE id = $1
	`, id).Scan(
		&ing.ID, &ing.Name, &ing.NormalizedName,
		&ing.AvgWeightGrams, &ing.WeightSource, &ing.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return ing, nil
}

// GetAliasByText retrieves a learned alias. Returns (nil, nil) when no
// row matches.
func (db *DB) GetAliasByText(ctx context.Context, alias string) (*models.IngredientAlias, error) {
	a := &models.IngredientAlias{}

	err := db.Pool.QueryRow(ctx, `
		SELECT id, alias, ingredient_id
		FROM ingredient_aliases
		WHERE alias = $1
	`, alias).Scan(&a.ID, &a.Alias, &a.IngredientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return a, nil
}

// UpsertIngredient inserts an ingredient or returns the existing row on
// a name collision. Concurrent resolutions of the same text converge on
// one identity.
func (db *DB) UpsertIngredient(ctx context.Context, name, normalizedName string) (*models.Ingredient, error) {
	ing := &models.Ingredient{}

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO ingredient_references (name, normalized_name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, normalized_name, avg_weight_grams, weight_source, created_at
	`, name, normalizedName).Scan(
		&ing.ID, &ing.Name, &ing.NormalizedName,
		&ing.AvgWeightGrams, &ing.WeightSource, &ing.CreatedAt,
	)
	if err != nil {
		// The normalized_name unique constraint can also collide when a
		// different display name maps to the same normalization.
		existing, lookupErr := db.GetIngredientByName(ctx, normalizedName)
		if lookupErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}

	return ing, nil
}

// UpsertAlias records a learned alias, ignoring duplicates
func (db *DB) UpsertAlias(ctx context.Context, alias string, ingredientID int) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO ingredient_aliases (alias, ingredient_id)
		VALUES ($1, $2)
		ON CONFLICT (alias) DO NOTHING
	`, alias, ingredientID)
	return err
}

// SetIngredientWeight caches a resolved per-unit weight on the ingredient
func (db *DB) SetIngredientWeight(ctx context.Context, ingredientID int, grams float64, source string) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE ingredient_references
		SET avg_weight_grams = $1, weight_source = $2
		WHERE id = $3
	`, grams, source, ingredientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrIngredientNotFound
	}
	return nil
}

// ListIngredientsWithAliases returns all ingredients with their learned aliases
func (db *DB) ListIngredientsWithAliases(ctx context.Context) ([]*models.IngredientWithAliases, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT
			i.id, i.name, i.normalized_name, i.avg_weight_grams, i.weight_source, i.created_at,
			COALESCE(
				(SELECT array_agg(a.alias ORDER BY a.alias)
				 FROM ingredient_aliases a
				 WHERE a.ingredient_id = i.id),
				ARRAY[]::TEXT[]
			) as aliases
		FROM ingredient_references i
		ORDER BY i.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []*models.IngredientWithAliases
	for rows.Next() {
		ing := &models.IngredientWithAliases{}
		err := rows.Scan(
			&ing.ID, &ing.Name, &ing.NormalizedName,
			&ing.AvgWeightGrams, &ing.WeightSource, &ing.CreatedAt,
			&ing.Aliases,
		)
		if err != nil {
			return nil, err
		}
		if ing.Aliases == nil {
			ing.Aliases = []string{}
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, nil
}

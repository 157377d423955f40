package database

import (
	"context"
	"errors"

	"github.com/ovenmitt/pantry-track/internal/models"
)

var (
	ErrSubstitutionNotFound = errors.New("substitution not found")
)

// ListSubstitutionsFor returns substitution rules for the given
// original ingredient in insertion order
func (db *DB) ListSubstitutionsFor(ctx context.Context, ingredientID int) ([]models.Substitution, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, original_ingredient_id, substitute_ingredient_id, ratio, quality_score, notes
		FROM ingredient_substitutions
		WHERE original_ingredient_id = $1
		ORDER BY id ASC
	`, ingredientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Substitution
	for rows.Next() {
		var s models.Substitution
		err := rows.Scan(
			&s.ID, &s.OriginalIngredientID, &s.SubstituteIngredientID,
			&s.Ratio, &s.QualityScore, &s.Notes,
		)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}

	return subs, nil
}

// ListSubstitutions returns all substitution rules
func (db *DB) ListSubstitutions(ctx context.Context) ([]models.Substitution, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, original_ingredient_id, substitute_ingredient_id, ratio, quality_score, notes
		FROM ingredient_substitutions
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Substitution
	for rows.Next() {
		var s models.Substitution
		err := rows.Scan(
			&s.ID, &s.OriginalIngredientID, &s.SubstituteIngredientID,
			&s.Ratio, &s.QualityScore, &s.Notes,
		)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}

	return subs, nil
}

// CreateSubstitution inserts a substitution rule
func (db *DB) CreateSubstitution(ctx context.Context, req *models.CreateSubstitutionRequest) (*models.Substitution, error) {
	s := &models.Substitution{}

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO ingredient_substitutions
			(original_ingredient_id, substitute_ingredient_id, ratio, quality_score, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, original_ingredient_id, substitute_ingredient_id, ratio, quality_score, notes
	`, req.OriginalIngredientID, req.SubstituteIngredientID, req.Ratio, req.QualityScore, req.Notes).Scan(
		&s.ID, &s.OriginalIngredientID, &s.SubstituteIngredientID,
		&s.Ratio, &s.QualityScore, &s.Notes,
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// DeleteSubstitution removes a substitution rule
func (db *DB) DeleteSubstitution(ctx context.Context, id int) error {
	tag, err := db.Pool.Exec(ctx,
		"DELETE FROM ingredient_substitutions WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSubstitutionNotFound
	}
	return nil
}

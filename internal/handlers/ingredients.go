package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ovenmitt/pantry-track/internal/database"
	"github.com/ovenmitt/pantry-track/internal/models"
	"github.com/ovenmitt/pantry-track/internal/services"
)

// ListIngredients returns all canonical ingredients with their learned aliases
func (h *Handler) ListIngredients(c *fiber.Ctx) error {
	ingredients, err := h.db.ListIngredientsWithAliases(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list ingredients")
	}
	if ingredients == nil {
		ingredients = []*models.IngredientWithAliases{}
	}
	return Success(c, ingredients)
}

// SeedAliases loads the built-in alias table into the database,
// creating canonical ingredients as needed. Safe to run repeatedly.
func (h *Handler) SeedAliases(c *fiber.Ctx) error {
	created := 0
	for canonical, aliases := range services.AliasSeeds() {
		ingredient, err := h.resolver.Resolve(c.Context(), canonical)
		if err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to seed aliases")
		}
		for _, alias := range aliases {
			if err := h.db.UpsertAlias(c.Context(), alias, ingredient.ID); err != nil {
				log.Printf("Warning: failed to seed alias %q: %v", alias, err)
				continue
			}
			created++
		}
	}

	return Success(c, fiber.Map{"seeded": created})
}

// ListSubstitutions returns all substitution rules
func (h *Handler) ListSubstitutions(c *fiber.Ctx) error {
	subs, err := h.db.ListSubstitutions(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list substitutions")
	}
	if subs == nil {
		subs = []models.Substitution{}
	}
	return Success(c, subs)
}

// CreateSubstitution adds a directed substitution rule
func (h *Handler) CreateSubstitution(c *fiber.Ctx) error {
	var req models.CreateSubstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.OriginalIngredientID == req.SubstituteIngredientID {
		return Error(c, fiber.StatusBadRequest, "an ingredient cannot substitute itself")
	}
	if req.Ratio <= 0 {
		req.Ratio = 1.0
	}
	if req.QualityScore < 1 || req.QualityScore > 10 {
		return Error(c, fiber.StatusBadRequest, "quality_score must be between 1 and 10")
	}

	// Both ends must exist
	for _, id := range []int{req.OriginalIngredientID, req.SubstituteIngredientID} {
		ingredient, err := h.db.GetIngredientByID(c.Context(), id)
		if err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to verify ingredient")
		}
		if ingredient == nil {
			return Error(c, fiber.StatusBadRequest, "unknown ingredient")
		}
	}

	sub, err := h.db.CreateSubstitution(c.Context(), &req)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to create substitution")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    sub,
	})
}

// DeleteSubstitution removes a substitution rule
func (h *Handler) DeleteSubstitution(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return Error(c, fiber.StatusBadRequest, "invalid substitution ID")
	}

	if err := h.db.DeleteSubstitution(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrSubstitutionNotFound) {
			return Error(c, fiber.StatusNotFound, "substitution not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete substitution")
	}

	return Success(c, fiber.Map{"deleted": true})
}

// ResolveIngredient is a debugging endpoint that runs the full
// normalize-and-resolve pipeline on arbitrary text
func (h *Handler) ResolveIngredient(c *fiber.Ctx) error {
	text := c.Query("text")
	if text == "" {
		return Error(c, fiber.StatusBadRequest, "text query parameter is required")
	}

	normalized := services.NormalizeIngredientText(text)
	if normalized == "" {
		return Error(c, fiber.StatusBadRequest, "text normalizes to nothing")
	}

	ingredient, err := h.resolver.Resolve(c.Context(), normalized)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to resolve ingredient")
	}

	return Success(c, fiber.Map{
		"normalized": normalized,
		"ingredient": ingredient,
	})
}

package handlers

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ovenmitt/pantry-track/internal/database"
	"github.com/ovenmitt/pantry-track/internal/models"
	"github.com/ovenmitt/pantry-track/internal/services"
)

// CreateRecipe imports a recipe from raw ingredient lines. Each line is
// parsed, normalized, and resolved to a canonical ingredient; the
// resolved requirement is stored and never re-resolved afterwards.
func (h *Handler) CreateRecipe(c *fiber.Ctx) error {
	var req models.CreateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return Error(c, fiber.StatusBadRequest, "title is required")
	}
	if len(req.IngredientLines) == 0 {
		return Error(c, fiber.StatusBadRequest, "at least one ingredient line is required")
	}

	var ingredients []models.RecipeIngredient
	for _, parsed := range h.parser.ParseLines(req.IngredientLines) {
		normalized := services.NormalizeIngredientText(parsed.Name)
		if normalized == "" {
			log.Printf("Skipping unparseable ingredient line: %q", parsed.Original)
			continue
		}

		ingredient, err := h.resolver.Resolve(c.Context(), normalized)
		if err != nil {
			return Error(c, fiber.StatusInternalServerError,
				fmt.Sprintf("failed to resolve ingredient %q", normalized))
		}

		quantity, unit := h.requirementQuantity(c, ingredient, parsed)

		ingredients = append(ingredients, models.RecipeIngredient{
			IngredientText:        parsed.Original,
			CanonicalIngredientID: ingredient.ID,
			Quantity:              quantity,
			Unit:                  unit,
		})
	}

	if len(ingredients) == 0 {
		return Error(c, fiber.StatusBadRequest, "no usable ingredient lines")
	}

	instructions := req.Instructions
	if instructions == nil {
		instructions = []string{}
	}

	result, err := h.db.CreateRecipe(c.Context(), &models.Recipe{
		Title:        req.Title,
		Instructions: instructions,
		SourceURL:    req.SourceURL,
	}, ingredients)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to save recipe")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    result,
	})
}

// requirementQuantity decides the stored quantity and unit for one
// parsed line. Measured lines convert to their base unit; bare counts
// go through weight estimation and fall back to discrete units.
func (h *Handler) requirementQuantity(c *fiber.Ctx, ingredient *models.Ingredient, parsed models.ParsedIngredientLine) (float64, string) {
	if parsed.Unit != "" {
		conv := services.ConvertToBaseUnit(parsed.Amount, parsed.Unit, ingredient.Name)
		return conv.Quantity, conv.BaseUnit
	}

	if result, ok := h.weights.Estimate(c.Context(), ingredient, parsed.Amount, parsed.Original); ok {
		return result.Quantity, result.Unit
	}

	return parsed.Amount, services.BaseUnitUnit
}

// ListRecipes returns all saved recipes
func (h *Handler) ListRecipes(c *fiber.Ctx) error {
	recipes, err := h.db.ListRecipes(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list recipes")
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	return Success(c, recipes)
}

// GetRecipe returns a recipe with its resolved requirements
func (h *Handler) GetRecipe(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return Error(c, fiber.StatusBadRequest, "invalid recipe ID")
	}

	recipe, err := h.db.GetRecipeByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get recipe")
	}

	ingredients, err := h.db.GetRecipeIngredients(c.Context(), id)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to get recipe ingredients")
	}
	if ingredients == nil {
		ingredients = []models.RecipeIngredient{}
	}

	return Success(c, models.RecipeWithIngredients{
		Recipe:      *recipe,
		Ingredients: ingredients,
	})
}

// DeleteRecipe removes a recipe and its requirements
func (h *Handler) DeleteRecipe(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return Error(c, fiber.StatusBadRequest, "invalid recipe ID")
	}

	if err := h.db.DeleteRecipe(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete recipe")
	}

	return Success(c, fiber.Map{"deleted": true})
}

// MatchRecipes scores every saved recipe against current inventory
func (h *Handler) MatchRecipes(c *fiber.Ctx) error {
	report, err := h.matcher.MatchAllRecipes(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to match recipes")
	}

	return Success(c, report)
}

// UploadRecipePhoto stores a photo for a recipe in object storage
func (h *Handler) UploadRecipePhoto(c *fiber.Ctx) error {
	if h.photos == nil {
		return Error(c, fiber.StatusServiceUnavailable, "photo storage not configured")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return Error(c, fiber.StatusBadRequest, "invalid recipe ID")
	}

	if _, err := h.db.GetRecipeByID(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get recipe")
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "photo file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		return Error(c, fiber.StatusBadRequest, "unsupported image format")
	}

	src, err := file.Open()
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read upload")
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	key := services.PhotoKey(id, file.Filename)

	if _, err := h.photos.Upload(c.Context(), key, src, file.Size, contentType); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to store photo")
	}

	if err := h.db.SetRecipeImageKey(c.Context(), id, key); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to save photo reference")
	}

	return Success(c, fiber.Map{"image_key": key})
}

// GetRecipePhotoURL returns a short-lived download URL for a recipe photo
func (h *Handler) GetRecipePhotoURL(c *fiber.Ctx) error {
	if h.photos == nil {
		return Error(c, fiber.StatusServiceUnavailable, "photo storage not configured")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return Error(c, fiber.StatusBadRequest, "invalid recipe ID")
	}

	recipe, err := h.db.GetRecipeByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get recipe")
	}

	if recipe.ImageKey == nil {
		return Error(c, fiber.StatusNotFound, "recipe has no photo")
	}

	url, err := h.photos.GetPresignedURL(c.Context(), *recipe.ImageKey, 15*time.Minute)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to generate photo URL")
	}

	return Success(c, fiber.Map{"url": url})
}

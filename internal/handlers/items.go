package handlers

import (
	"errors"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ovenmitt/pantry-track/internal/database"
	"github.com/ovenmitt/pantry-track/internal/models"
	"github.com/ovenmitt/pantry-track/internal/services"
)

// ListItems returns stocked items with optional location and search filters
func (h *Handler) ListItems(c *fiber.Ctx) error {
	params := &models.ItemListParams{
		Limit:    c.QueryInt("limit", 50),
		Offset:   c.QueryInt("offset", 0),
		Location: c.Query("location"),
		Search:   c.Query("search"),
	}

	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	if params.Location != "" && !models.ValidLocation(models.Location(params.Location)) {
		return Error(c, fiber.StatusBadRequest, "invalid location")
	}

	items, total, err := h.db.ListItems(c.Context(), params)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list items")
	}

	return SuccessWithMeta(c, items, total, params.Limit, params.Offset)
}

// GetItem returns a single stocked item
func (h *Handler) GetItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return Error(c, fiber.StatusBadRequest, "invalid item ID")
	}

	item, err := h.db.GetItemByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return Error(c, fiber.StatusNotFound, "item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get item")
	}

	return Success(c, item)
}

// AddItemByBarcode scans a barcode into stock. Unknown barcodes are
// looked up on OpenFoodFacts and cached as catalog products.
func (h *Handler) AddItemByBarcode(c *fiber.Ctx) error {
	var req models.AddItemByBarcodeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Barcode = strings.TrimSpace(req.Barcode)
	if req.Barcode == "" {
		return Error(c, fiber.StatusBadRequest, "barcode is required")
	}
	if req.Location == "" {
		req.Location = models.LocationFridge
	}
	if !models.ValidLocation(req.Location) {
		return Error(c, fiber.StatusBadRequest, "invalid location")
	}

	product, err := h.db.GetProductByBarcode(c.Context(), req.Barcode)
	if err != nil {
		if !errors.Is(err, database.ErrProductNotFound) {
			return Error(c, fiber.StatusInternalServerError, "failed to look up product")
		}

		// Not in the catalog yet, ask OpenFoodFacts
		found, lookupErr := h.openFood.LookupBarcode(c.Context(), req.Barcode)
		if lookupErr != nil {
			if errors.Is(lookupErr, services.ErrProductNotFound) {
				return Error(c, fiber.StatusNotFound, "barcode not recognized")
			}
			return Error(c, fiber.StatusBadGateway, "product lookup failed")
		}

		newProduct := &models.ProductReference{
			Barcode:         &req.Barcode,
			Name:            found.Name,
			PackageQuantity: 1,
			PackageUnit:     "unit",
			ProductType:     "upc",
		}
		if len(found.Brands) > 0 {
			newProduct.Brand = &found.Brands[0]
		}
		if len(found.Categories) > 0 {
			newProduct.Category = &found.Categories[0]
		}

		product, err = h.db.CreateProduct(c.Context(), newProduct)
		if err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to save product")
		}
	}

	item, err := h.db.StockItem(c.Context(), product.ID, req.Location, 1, nil)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to stock item")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data: models.ItemWithProduct{
			Item:    *item,
			Product: *product,
		},
	})
}

// CreateItem adds a PLU or custom product directly to stock
func (h *Handler) CreateItem(c *fiber.Ctx) error {
	var req models.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "name is required")
	}
	if req.Location == "" {
		req.Location = models.LocationFridge
	}
	if !models.ValidLocation(req.Location) {
		return Error(c, fiber.StatusBadRequest, "invalid location")
	}
	if req.PackageQuantity <= 0 {
		req.PackageQuantity = 1
	}
	if req.PackageUnit == "" {
		req.PackageUnit = "unit"
	}
	if req.Qty <= 0 {
		req.Qty = 1
	}

	product, err := h.db.CreateProduct(c.Context(), &models.ProductReference{
		Name:            req.Name,
		Brand:           req.Brand,
		Category:        req.Category,
		PackageQuantity: req.PackageQuantity,
		PackageUnit:     services.StandardizeUnit(req.PackageUnit),
		ProductType:     "plu",
	})
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to save product")
	}

	item, err := h.db.StockItem(c.Context(), product.ID, req.Location, req.Qty, req.ExpiresAt)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to stock item")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data: models.ItemWithProduct{
			Item:    *item,
			Product: *product,
		},
	})
}

// UpdateItem updates a stocked item's location, quantity, or expiry
func (h *Handler) UpdateItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return Error(c, fiber.StatusBadRequest, "invalid item ID")
	}

	var req models.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Location != nil && !models.ValidLocation(*req.Location) {
		return Error(c, fiber.StatusBadRequest, "invalid location")
	}
	if req.Qty != nil && *req.Qty < 0 {
		return Error(c, fiber.StatusBadRequest, "qty cannot be negative")
	}

	item, err := h.db.UpdateItem(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return Error(c, fiber.StatusNotFound, "item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update item")
	}

	return Success(c, item)
}

// DeleteItem removes a stocked item
func (h *Handler) DeleteItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return Error(c, fiber.StatusBadRequest, "invalid item ID")
	}

	if err := h.db.DeleteItem(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return Error(c, fiber.StatusNotFound, "item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete item")
	}

	return Success(c, fiber.Map{"deleted": true})
}

// GetInventorySummary returns stock aggregated into canonical
// ingredient totals in base units
func (h *Handler) GetInventorySummary(c *fiber.Ctx) error {
	inventory, err := h.matcher.AggregateInventory(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to aggregate inventory")
	}

	lines := make([]*models.InventoryLine, 0, len(inventory))
	for _, line := range inventory {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].IngredientName < lines[j].IngredientName
	})

	return Success(c, lines)
}

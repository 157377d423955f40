package models

import (
	"time"
)

// Location is where a stocked item lives in the kitchen
type Location string

const (
	LocationFridge   Location = "fridge"
	LocationFreezer  Location = "freezer"
	LocationCupboard Location = "cupboard"
)

// ValidLocation reports whether l is one of the known storage locations
func ValidLocation(l Location) bool {
	switch l {
	case LocationFridge, LocationFreezer, LocationCupboard:
		return true
	}
	return false
}

// ProductReference is a catalog entry for a purchasable product.
// Barcode is nil for PLU (fresh/weighed) products.
type ProductReference struct {
	ID              int       `json:"id"`
	Barcode         *string   `json:"barcode,omitempty"`
	Name            string    `json:"name"`
	Brand           *string   `json:"brand,omitempty"`
	Category        *string   `json:"category,omitempty"`
	PackageQuantity float64   `json:"package_quantity"`
	PackageUnit     string    `json:"package_unit"`
	ProductType     string    `json:"product_type"` // "upc" or "plu"
	CreatedAt       time.Time `json:"created_at"`
}

// Item is a stocked product at a location. One row per
// (product, location) pair; repeat scans bump Qty.
type Item struct {
	ID                 int        `json:"id"`
	ProductReferenceID int        `json:"product_reference_id"`
	Location           Location   `json:"location"`
	Qty                float64    `json:"qty"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ItemWithProduct joins an item with its product catalog row
type ItemWithProduct struct {
	Item
	Product ProductReference `json:"product"`
}

// AddItemByBarcodeRequest is the request body for scanning an item in
type AddItemByBarcodeRequest struct {
	Barcode  string   `json:"barcode"`
	Location Location `json:"location,omitempty"`
}

// CreateItemRequest adds a PLU / custom item directly
type CreateItemRequest struct {
	Name            string     `json:"name"`
	Brand           *string    `json:"brand,omitempty"`
	Category        *string    `json:"category,omitempty"`
	PackageQuantity float64    `json:"package_quantity"`
	PackageUnit     string     `json:"package_unit"`
	Location        Location   `json:"location,omitempty"`
	Qty             float64    `json:"qty,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

// UpdateItemRequest is the request body for updating a stocked item
type UpdateItemRequest struct {
	Location  *Location  `json:"location,omitempty"`
	Qty       *float64   `json:"qty,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ItemListParams contains parameters for listing items
type ItemListParams struct {
	Limit    int
	Offset   int
	Location string
	Search   string
}

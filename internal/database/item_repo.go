package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ovenmitt/pantry-track/internal/models"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrProductNotFound = errors.New("product not found")
)

const itemSelectColumns = `
	it.id, it.product_reference_id, it.location, it.qty, it.expires_at, it.created_at, it.updated_at,
	p.id, p.barcode, p.name, p.brand, p.category,
	p.package_quantity, p.package_unit, p.product_type, p.created_at
`

func scanItemWithProduct(row pgx.Row) (*models.ItemWithProduct, error) {
	item := &models.ItemWithProduct{}
	err := row.Scan(
		&item.ID, &item.ProductReferenceID, &item.Location, &item.Qty,
		&item.ExpiresAt, &item.CreatedAt, &item.UpdatedAt,
		&item.Product.ID, &item.Product.Barcode, &item.Product.Name,
		&item.Product.Brand, &item.Product.Category,
		&item.Product.PackageQuantity, &item.Product.PackageUnit,
		&item.Product.ProductType, &item.Product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItemsWithProducts returns every stocked item joined with its
// product row, for inventory aggregation
func (db *DB) ListItemsWithProducts(ctx context.Context) ([]models.ItemWithProduct, error) {
	rows, err := db.Pool.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM items it
		JOIN product_references p ON it.product_reference_id = p.id
		ORDER BY it.id ASC
	`, itemSelectColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ItemWithProduct
	for rows.Next() {
		item, err := scanItemWithProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, nil
}

// ListItems returns a paginated list of stocked items with optional filtering
func (db *DB) ListItems(ctx context.Context, params *models.ItemListParams) ([]*models.ItemWithProduct, int, error) {
	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(LOWER(p.name) LIKE LOWER($%d) OR LOWER(p.brand) LIKE LOWER($%d))",
			argIndex, argIndex,
		))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	if params.Location != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("it.location = $%d", argIndex))
		args = append(args, params.Location)
		argIndex++
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Get total count
	var total int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM items it
		JOIN product_references p ON it.product_reference_id = p.id
		%s
	`, whereClause)
	err := db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM items it
		JOIN product_references p ON it.product_reference_id = p.id
		%s
		ORDER BY p.name ASC
		LIMIT $%d OFFSET $%d
	`, itemSelectColumns, whereClause, argIndex, argIndex+1)

	args = append(args, params.Limit, params.Offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*models.ItemWithProduct
	for rows.Next() {
		item, err := scanItemWithProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}

	return items, total, nil
}

// GetItemByID retrieves a stocked item with its product
func (db *DB) GetItemByID(ctx context.Context, id int) (*models.ItemWithProduct, error) {
	row := db.Pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM items it
		JOIN product_references p ON it.product_reference_id = p.id
		WHERE it.id = $1
	`, itemSelectColumns), id)

	item, err := scanItemWithProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// GetProductByBarcode retrieves a catalog product by barcode
func (db *DB) GetProductByBarcode(ctx context.Context, barcode string) (*models.ProductReference, error) {
	p := &models.ProductReference{}

	err := db.Pool.QueryRow(ctx, `
		SELECT id, barcode, name, brand, category, package_quantity, package_unit, product_type, created_at
		FROM product_references
		WHERE barcode = $1
	`, barcode).Scan(
		&p.ID, &p.Barcode, &p.Name, &p.Brand, &p.Category,
		&p.PackageQuantity, &p.PackageUnit, &p.ProductType, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return p, nil
}

// CreateProduct inserts a catalog product. A barcode collision returns
// the existing row instead.
func (db *DB) CreateProduct(ctx context.Context, product *models.ProductReference) (*models.ProductReference, error) {
	p := &models.ProductReference{}

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO product_references
			(barcode, name, brand, category, package_quantity, package_unit, product_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (barcode) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, barcode, name, brand, category, package_quantity, package_unit, product_type, created_at
	`, product.Barcode, product.Name, product.Brand, product.Category,
		product.PackageQuantity, product.PackageUnit, product.ProductType).Scan(
		&p.ID, &p.Barcode, &p.Name, &p.Brand, &p.Category,
		&p.PackageQuantity, &p.PackageUnit, &p.ProductType, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// StockItem adds qty of a product at a location, creating the item row
// or bumping the existing one for that (product, location) pair
func (db *DB) StockItem(ctx context.Context, productID int, location models.Location, qty float64, expiresAt *time.Time) (*models.Item, error) {
	item := &models.Item{}

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO items (product_reference_id, location, qty, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_reference_id, location)
		DO UPDATE SET qty = items.qty + EXCLUDED.qty,
		              expires_at = COALESCE(EXCLUDED.expires_at, items.expires_at),
		              updated_at = NOW()
		RETURNING id, product_reference_id, location, qty, expires_at, created_at, updated_at
	`, productID, location, qty, expiresAt).Scan(
		&item.ID, &item.ProductReferenceID, &item.Location, &item.Qty,
		&item.ExpiresAt, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateItem updates a stocked item's location, quantity, or expiry
func (db *DB) UpdateItem(ctx context.Context, id int, req *models.UpdateItemRequest) (*models.ItemWithProduct, error) {
	var setClauses []string
	var args []interface{}
	argIndex := 1

	if req.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", argIndex))
		args = append(args, *req.Location)
		argIndex++
	}
	if req.Qty != nil {
		setClauses = append(setClauses, fmt.Sprintf("qty = $%d", argIndex))
		args = append(args, *req.Qty)
		argIndex++
	}
	if req.ExpiresAt != nil {
		setClauses = append(setClauses, fmt.Sprintf("expires_at = $%d", argIndex))
		args = append(args, *req.ExpiresAt)
		argIndex++
	}

	if len(setClauses) == 0 {
		return db.GetItemByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE items SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), argIndex,
	)

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrItemNotFound
	}

	return db.GetItemByID(ctx, id)
}

// DeleteItem removes a stocked item
func (db *DB) DeleteItem(ctx context.Context, id int) error {
	tag, err := db.Pool.Exec(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	openFoodFactsAPIURL = "https://world.openfoodfacts.org/api/v0/product"
	openFoodTimeout     = 10 * time.Second
)

var (
	// ErrProductNotFound means the barcode is unknown to OpenFoodFacts
	ErrProductNotFound = errors.New("product not found")
)

// BarcodeProduct is the catalog data OpenFoodFacts knows for a barcode
type BarcodeProduct struct {
	Name       string
	Brands     []string
	Categories []string
}

// OpenFoodService resolves barcodes to product data via the
// OpenFoodFacts public API
type OpenFoodService struct {
	httpClient *http.Client
}

// NewOpenFoodService creates a new OpenFoodFacts client
func NewOpenFoodService() *OpenFoodService {
	return &OpenFoodService{
		httpClient: &http.Client{
			Timeout: openFoodTimeout,
		},
	}
}

type openFoodResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
		Categories  string `json:"categories"`
	} `json:"product"`
}

// LookupBarcode fetches product data for a barcode. Returns
// ErrProductNotFound when OpenFoodFacts has no record.
func (s *OpenFoodService) LookupBarcode(ctx context.Context, barcode string) (*BarcodeProduct, error) {
	reqURL := fmt.Sprintf("%s/%s.json", openFoodFactsAPIURL, barcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts returned %d", resp.StatusCode)
	}

	var result openFoodResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("openfoodfacts decode: %w", err)
	}

	if result.Status != 1 || result.Product.ProductName == "" {
		return nil, ErrProductNotFound
	}

	return &BarcodeProduct{
		Name:       result.Product.ProductName,
		Brands:     splitCSV(result.Product.Brands),
		Categories: splitCSV(result.Product.Categories),
	}, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	usdaSearchAPIURL  = "https://api.nal.usda.gov/fdc/v1/foods/search"
	usdaFoodAPIURL    = "https://api.nal.usda.gov/fdc/v1/food"
	usdaTimeout       = 5 * time.Second
	usdaSearchResults = 3
)

// USDAService looks up per-unit portion weights from the USDA FNDDS
// dataset. FNDDS food detail records carry a foodPortions array with
// entries like "1 medium carrot = 61g", which is exactly the data a
// count-based recipe line needs. Implements WeightProvider.
type USDAService struct {
	apiKey     string
	httpClient *http.Client
}

// NewUSDAService creates a new USDA FNDDS client. An empty API key
// disables the service (LookupUnitWeight always reports no data).
func NewUSDAService(apiKey string) *USDAService {
	return &USDAService{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: usdaTimeout,
		},
	}
}

type usdaSearchResponse struct {
	Foods []struct {
		FdcID       int    `json:"fdcId"`
		Description string `json:"description"`
	} `json:"foods"`
}

type usdaFoodDetail struct {
	FoodPortions []usdaPortion `json:"foodPortions"`
}

type usdaPortion struct {
	Amount             float64 `json:"amount"`
	GramWeight         float64 `json:"gramWeight"`
	Modifier           string  `json:"modifier"`
	PortionDescription string  `json:"portionDescription"`
}

// LookupUnitWeight returns the per-unit gram weight for an ingredient
// name, or ok=false when nothing usable was found. Network errors,
// timeouts, and malformed payloads all degrade to "no data".
func (s *USDAService) LookupUnitWeight(ctx context.Context, ingredientName string) (float64, bool) {
	if s.apiKey == "" {
		return 0, false
	}

	fdcID, ok := s.searchBestMatch(ctx, ingredientName)
	if !ok {
		return 0, false
	}

	detail, err := s.fetchFoodDetail(ctx, fdcID)
	if err != nil {
		log.Printf("USDA detail fetch failed for %q: %v", ingredientName, err)
		return 0, false
	}

	weight, ok := unitWeightFromPortions(detail.FoodPortions)
	if !ok {
		return 0, false
	}
	return weight, true
}

// searchBestMatch returns the fdcId of the top FNDDS search result
func (s *USDAService) searchBestMatch(ctx context.Context, ingredientName string) (int, bool) {
	params := url.Values{}
	params.Set("api_key", s.apiKey)
	params.Set("query", ingredientName)
	params.Set("dataType", "Survey (FNDDS)") // only FNDDS has portion weights
	params.Set("pageSize", strconv.Itoa(usdaSearchResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, usdaSearchAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, false
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("USDA search failed for %q: %v", ingredientName, err)
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("USDA search returned %d for %q", resp.StatusCode, ingredientName)
		return 0, false
	}

	var result usdaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, false
	}
	if len(result.Foods) == 0 {
		return 0, false
	}

	return result.Foods[0].FdcID, true
}

// fetchFoodDetail fetches the full food record including portions
func (s *USDAService) fetchFoodDetail(ctx context.Context, fdcID int) (*usdaFoodDetail, error) {
	reqURL := fmt.Sprintf("%s/%d?api_key=%s", usdaFoodAPIURL, fdcID, url.QueryEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usda detail returned %d", resp.StatusCode)
	}

	var detail usdaFoodDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// unitWeightFromPortions extracts a representative per-unit gram
// weight from a foodPortions array. Preference order: an amount=1
// "medium" portion, then any amount=1 portion, then the first portion
// normalized by its amount.
func unitWeightFromPortions(portions []usdaPortion) (float64, bool) {
	var valid []usdaPortion
	for _, p := range portions {
		if p.GramWeight > 0 && p.Amount > 0 {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return 0, false
	}

	for _, p := range valid {
		modifier := strings.ToLower(p.Modifier)
		if modifier == "" {
			modifier = strings.ToLower(p.PortionDescription)
		}
		if p.Amount == 1 && strings.Contains(modifier, "medium") {
			return p.GramWeight, true
		}
	}

	for _, p := range valid {
		if p.Amount == 1 {
			return p.GramWeight, true
		}
	}

	return valid[0].GramWeight / valid[0].Amount, true
}

package services

import (
	"strings"
)

// Conversion confidence levels. Qualitative tags, not probabilities.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Base units everything converts down to
const (
	BaseUnitGram = "g"
	BaseUnitMl   = "ml"
	BaseUnitUnit = "unit"
)

// Conversion is the result of converting a quantity to its base unit
type Conversion struct {
	Quantity   float64 `json:"quantity"`
	BaseUnit   string  `json:"base_unit"`
	Confidence string  `json:"conversion_confidence"`
}

// unitAliases maps the many spellings of a unit to its canonical token
var unitAliases = map[string]string{
	// Weight
	"g": "g", "gr": "g", "gram": "g", "grams": "g",
	"kg": "kg", "kilo": "kg", "kilogram": "kg", "kilograms": "kg",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",

	// Volume
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"cl": "cl", "centiliter": "cl", "centiliters": "cl",
	"cup": "cup", "cups": "cup", "c": "cup",
	"tbsp": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp", "tbs": "tbsp",
	"tsp": "tsp", "teaspoon": "tsp", "teaspoons": "tsp", "t": "tsp",
	"fl oz": "fl oz", "floz": "fl oz", "fluid ounce": "fl oz", "fluid ounces": "fl oz",
	"pint": "pint", "pints": "pint", "pt": "pint",
	"quart": "quart", "quarts": "quart", "qt": "quart",
	"gal": "gallon", "gallon": "gallon", "gallons": "gallon",

	// Dozen keeps its own token for the 12x multiplier
	"dozen": "dozen", "doz": "dozen",
}

// discreteAliases all standardize to "unit"
var discreteAliases = []string{
	"unit", "units", "piece", "pieces", "item", "items", "pcs", "pc", "whole", "count",
	"clove", "cloves", "packet", "packets", "serving", "servings", "bag", "bags",
	"can", "cans", "jar", "jars", "bottle", "bottles", "box", "boxes",
	"small", "medium", "large", "head", "heads", "bunch", "bunches",
	"slice", "slices", "stalk", "stalks", "sprig", "sprigs", "leaf", "leaves",
}

func init() {
	for _, d := range discreteAliases {
		unitAliases[d] = "unit"
	}
}

// weightToGrams converts canonical weight tokens to grams
var weightToGrams = map[string]float64{
	"g":  1.0,
	"kg": 1000.0,
	"oz": 28.35,
	"lb": 453.59,
}

// volumeToMl converts canonical volume tokens to milliliters
var volumeToMl = map[string]float64{
	"ml":     1.0,
	"l":      1000.0,
	"cl":     10.0,
	"cup":    240.0,
	"tbsp":   14.79,
	"tsp":    4.93,
	"fl oz":  29.57,
	"pint":   473.18,
	"quart":  946.35,
	"gallon": 3785.41,
}

// dryDensities is grams per cup for common dry ingredients,
// keyed by exact normalized ingredient name
var dryDensities = map[string]float64{
	"flour":             120,
	"all-purpose flour": 120,
	"bread flour":       127,
	"cake flour":        114,
	"whole wheat flour": 120,
	"sugar":             200,
	"white sugar":       200,
	"granulated sugar":  200,
	"brown sugar":       220,
	"powdered sugar":    120,
	"confectioners sugar": 120,
	"butter":            227,
	"cocoa powder":      85,
	"oats":              90,
	"rice":              185,
	"salt":              292,
	"baking soda":       220,
	"baking powder":     192,
}

// liquidDensities is ml per cup for known liquids. Presence in this
// table means "keep as ml" with high confidence.
var liquidDensities = map[string]float64{
	"milk":            240,
	"water":           240,
	"oil":             240,
	"vegetable oil":   240,
	"olive oil":       216,
	"honey":           340,
	"maple syrup":     312,
	"vanilla extract": 240,
}

// liquidKeywords flag an ingredient as probably liquid when its name
// is not in the density tables
var liquidKeywords = []string{
	"oil", "milk", "water", "juice", "broth", "stock", "sauce", "vinegar",
	"wine", "beer", "liquor", "cream", "yogurt", "buttermilk", "extract",
	"syrup", "honey", "molasses", "marinade", "dressing", "gravy",
}

// Default density for dry ingredients not in the table (g/cup)
const defaultDryDensity = 150.0

const mlPerCup = 240.0

// StandardizeUnit maps a raw unit spelling to its canonical token.
// Blank or unknown-but-discrete spellings become "unit"; tokens we
// have never seen pass through unchanged.
func StandardizeUnit(raw string) string {
	unit := strings.ToLower(strings.TrimSpace(raw))
	if unit == "" {
		return BaseUnitUnit
	}
	if canonical, ok := unitAliases[unit]; ok {
		return canonical
	}
	return unit
}

// IsLikelyLiquid guesses whether an ingredient is a liquid from its name
func IsLikelyLiquid(ingredientName string) bool {
	if ingredientName == "" {
		return false
	}
	name := strings.ToLower(ingredientName)
	for _, kw := range liquidKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// ConvertToBaseUnit converts a quantity to grams, milliliters, or
// discrete units. Never fails: unrecognized units pass through with
// low confidence because scraped recipes routinely carry garbage unit
// text. ingredientName may be empty; it only sharpens volume→weight
// density decisions.
func ConvertToBaseUnit(quantity float64, rawUnit string, ingredientName string) Conversion {
	// Blank unit means a discrete count ("2 eggs")
	if strings.TrimSpace(rawUnit) == "" {
		return Conversion{Quantity: quantity, BaseUnit: BaseUnitUnit, Confidence: ConfidenceHigh}
	}

	unit := StandardizeUnit(rawUnit)
	nameNorm := strings.ToLower(strings.TrimSpace(ingredientName))

	// Discrete units
	if unit == BaseUnitUnit {
		return Conversion{Quantity: quantity, BaseUnit: BaseUnitUnit, Confidence: ConfidenceHigh}
	}
	if unit == "dozen" {
		return Conversion{Quantity: quantity * 12, BaseUnit: BaseUnitUnit, Confidence: ConfidenceHigh}
	}

	// Weight units
	if factor, ok := weightToGrams[unit]; ok {
		return Conversion{Quantity: quantity * factor, BaseUnit: BaseUnitGram, Confidence: ConfidenceHigh}
	}

	// Volume units
	if factor, ok := volumeToMl[unit]; ok {
		mlValue := quantity * factor

		// Known dry ingredient: ml → cups → grams
		if nameNorm != "" {
			if density, ok := dryDensities[nameNorm]; ok {
				grams := mlValue / mlPerCup * density
				return Conversion{Quantity: grams, BaseUnit: BaseUnitGram, Confidence: ConfidenceHigh}
			}
			if _, ok := liquidDensities[nameNorm]; ok {
				return Conversion{Quantity: mlValue, BaseUnit: BaseUnitMl, Confidence: ConfidenceHigh}
			}
			if IsLikelyLiquid(ingredientName) {
				return Conversion{Quantity: mlValue, BaseUnit: BaseUnitMl, Confidence: ConfidenceMedium}
			}
			// Assume dry, fall back to the default density
			grams := mlValue / mlPerCup * defaultDryDensity
			return Conversion{Quantity: grams, BaseUnit: BaseUnitGram, Confidence: ConfidenceMedium}
		}

		// No ingredient name to steer the density decision
		return Conversion{Quantity: mlValue, BaseUnit: BaseUnitMl, Confidence: ConfidenceLow}
	}

	// Unrecognized unit passes through untouched
	return Conversion{Quantity: quantity, BaseUnit: unit, Confidence: ConfidenceLow}
}

// Unit dimensions
const (
	DimensionWeight  = "weight"
	DimensionVolume  = "volume"
	DimensionCount   = "count"
	DimensionUnknown = "unknown"
)

// UnitDimension classifies a unit as weight, volume, or count
func UnitDimension(unit string) string {
	u := StandardizeUnit(unit)
	if _, ok := weightToGrams[u]; ok {
		return DimensionWeight
	}
	if _, ok := volumeToMl[u]; ok {
		return DimensionVolume
	}
	if u == BaseUnitUnit || u == "dozen" {
		return DimensionCount
	}
	return DimensionUnknown
}

// CanConvertUnits reports whether two quantities may be summed or
// compared. Cross-dimension quantities are never coercible.
func CanConvertUnits(unitA, unitB string) bool {
	a := StandardizeUnit(unitA)
	b := StandardizeUnit(unitB)
	if a == b {
		return true
	}
	dimA := UnitDimension(a)
	if dimA == DimensionUnknown {
		return false
	}
	return dimA == UnitDimension(b)
}

package services

import (
	"strings"
)

// ingredientAliasSeeds covers variants the plural/singular rules can't
// reach: regional names (scallions → green onion), modifier-stripped
// forms (boneless skinless chicken breast → chicken breast), and
// synonyms (cilantro ↔ coriander).
// Format: canonical name → alias spellings.
var ingredientAliasSeeds = map[string][]string{
	// Alliums
	"green onion": {
		"scallion", "scallions",
		"spring onion", "spring onions",
		"green onions",
	},
	"onion": {
		"onions",
		"yellow onion", "yellow onions",
		"white onion", "white onions",
		"sweet onion", "sweet onions",
		"cooking onion", "cooking onions",
	},
	"red onion": {
		"red onions",
		"purple onion", "purple onions",
	},
	"shallot": {"shallots", "eschallot", "eschallots"},
	"garlic":  {"garlic clove", "garlic cloves"},

	// Poultry
	"chicken breast": {
		"chicken breasts",
		"boneless chicken breast", "boneless chicken breasts",
		"skinless chicken breast", "skinless chicken breasts",
		"boneless skinless chicken breast", "boneless skinless chicken breasts",
	},
	"chicken thigh": {
		"chicken thighs",
		"boneless chicken thigh", "boneless chicken thighs",
		"skinless chicken thigh", "skinless chicken thighs",
		"boneless skinless chicken thigh", "boneless skinless chicken thighs",
	},
	"chicken leg": {"chicken legs", "drumstick", "drumsticks"},

	// Peppers
	"bell pepper": {
		"bell peppers",
		"capsicum", "capsicums",
		"sweet pepper", "sweet peppers",
	},
	"red bell pepper": {
		"red bell peppers",
		"red pepper", "red peppers",
		"red capsicum",
	},
	"green bell pepper": {
		"green bell peppers",
		"green pepper", "green peppers",
		"green capsicum",
	},
	"jalapeño": {
		"jalapeno", "jalapenos", "jalapeños",
		"jalapeño pepper", "jalapeño peppers",
		"jalapeno pepper", "jalapeno peppers",
	},

	// Root vegetables
	"carrot":       {"carrots", "baby carrot", "baby carrots"},
	"potato":       {"potatoes", "white potato", "white potatoes", "russet potato", "russet potatoes"},
	"sweet potato": {"sweet potatoes", "yam", "yams"},
	"beet":         {"beets", "beetroot", "beetroots"},

	// Brassicas
	"broccoli":        {"broccoli floret", "broccoli florets", "broccoli crown", "broccoli crowns"},
	"brussels sprout": {"brussels sprouts", "brussel sprout", "brussel sprouts"},

	// Fungi
	"mushroom": {
		"mushrooms",
		"button mushroom", "button mushrooms",
		"cremini mushroom", "cremini mushrooms",
		"crimini mushroom", "crimini mushrooms",
		"white mushroom", "white mushrooms",
	},
	"shiitake mushroom": {"shiitake mushrooms", "shiitake", "shiitakes"},
	"portobello mushroom": {
		"portobello mushrooms",
		"portabella mushroom", "portabella mushrooms",
		"portobella mushroom", "portobella mushrooms",
	},

	// Leafy greens
	"spinach": {"baby spinach", "fresh spinach"},
	"kale":    {"curly kale", "lacinato kale", "dinosaur kale"},
	"lettuce": {
		"romaine lettuce", "romaine",
		"iceberg lettuce", "iceberg",
		"boston lettuce", "butter lettuce",
	},

	// Tomatoes
	"tomato":        {"tomatoes", "roma tomato", "roma tomatoes", "plum tomato", "plum tomatoes"},
	"cherry tomato": {"cherry tomatoes"},
	"grape tomato":  {"grape tomatoes"},

	// Herbs
	"cilantro": {"coriander", "coriander leaves", "fresh cilantro", "fresh coriander"},
	"parsley":  {"flat leaf parsley", "italian parsley", "curly parsley", "fresh parsley"},
	"basil":    {"fresh basil", "sweet basil"},
	"mint":     {"fresh mint", "spearmint"},
	"thyme":    {"fresh thyme"},
	"rosemary": {"fresh rosemary"},
	"dill":     {"fresh dill", "dill weed"},

	// Seafood
	"shrimp": {"prawns", "prawn", "large shrimp", "jumbo shrimp"},
	"salmon": {"salmon fillet", "salmon fillets", "salmon steak", "atlantic salmon"},
	"tuna":   {"tuna steak", "tuna steaks", "ahi tuna"},

	// Fruits
	"avocado": {"avocados", "hass avocado", "hass avocados"},
	"lemon":   {"lemons"},
	"lime":    {"limes"},

	// Aromatics
	"ginger": {"fresh ginger", "ginger root", "ginger knob"},

	// Eggs
	"egg": {"eggs", "large egg", "large eggs"},

	// Plant-based
	"tofu": {"firm tofu", "extra firm tofu", "silken tofu", "soft tofu"},
}

// seedCanonicalFor reverse-looks-up the seed table: alias text →
// canonical name. Returns "" when the text is not a seeded alias.
func seedCanonicalFor(text string) string {
	for canonical, aliases := range ingredientAliasSeeds {
		if canonical == text {
			return canonical
		}
		for _, a := range aliases {
			if a == text {
				return canonical
			}
		}
	}
	return ""
}

// AliasSeeds returns the static seed table for the seeder and the
// seed-aliases admin endpoint.
func AliasSeeds() map[string][]string {
	return ingredientAliasSeeds
}

// manualUnitWeights is average grams per single unit for common fresh
// items, keyed by normalized ingredient name
var manualUnitWeights = map[string]float64{
	// Poultry & meat
	"chicken breast": 340, // 1 medium boneless/skinless breast
	"chicken thigh":  150, // 1 boneless thigh
	"chicken leg":    200, // 1 drumstick + thigh
	"pork chop":      200, // 1 medium chop
	"beef steak":     225, // 1 portion steak

	// Vegetables
	"carrot":      60,  // 1 medium carrot
	"bell pepper": 120, // 1 medium pepper
	"onion":       150, // 1 medium onion
	"tomato":      150, // 1 medium tomato
	"potato":      200, // 1 medium potato
	"zucchini":    200, // 1 medium zucchini
	"cucumber":    300, // 1 medium cucumber
	"broccoli":    150, // 1 crown/head
	"cauliflower": 500, // 1 head
	"celery":      40,  // 1 stalk
	"garlic":      5,   // 1 clove

	// Fruits
	"apple":   180, // 1 medium apple
	"banana":  120, // 1 medium banana
	"orange":  140, // 1 medium orange
	"lemon":   58,  // 1 medium lemon
	"lime":    44,  // 1 medium lime
	"avocado": 150, // 1 medium avocado

	// Eggs
	"egg": 50, // 1 large egg
}

// ManualUnitWeight looks up the curated per-unit gram weight for an
// ingredient. ok is false when the ingredient is not in the table.
func ManualUnitWeight(ingredientName string) (float64, bool) {
	w, ok := manualUnitWeights[strings.ToLower(strings.TrimSpace(ingredientName))]
	return w, ok
}

// ManualWeightTable returns the full curated table for the seeder.
func ManualWeightTable() map[string]float64 {
	return manualUnitWeights
}

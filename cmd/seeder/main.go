package main

import (
	"context"
	"flag"
	"log"
	"sort"

	"github.com/joho/godotenv"

	"github.com/ovenmitt/pantry-track/internal/config"
	"github.com/ovenmitt/pantry-track/internal/database"
	"github.com/ovenmitt/pantry-track/internal/models"
	"github.com/ovenmitt/pantry-track/internal/services"
)

// starterSubstitution is a seed substitution rule, named by ingredient
// so the rule survives re-seeding into a fresh database
type starterSubstitution struct {
	Original     string
	Substitute   string
	Ratio        float64
	QualityScore int
	Notes        string
}

var starterSubstitutions = []starterSubstitution{
	{"butter", "margarine", 1.0, 8, "Works for most baking and cooking"},
	{"butter", "coconut oil", 1.0, 6, "Adds slight coconut flavor"},
	{"milk", "heavy cream", 0.5, 7, "Dilute with equal part water"},
	{"sour cream", "greek yogurt", 1.0, 9, "Nearly identical in most dishes"},
	{"green onion", "onion", 0.5, 6, "Stronger flavor, use less"},
	{"cilantro", "parsley", 1.0, 5, "Different flavor, same texture"},
	{"lemon juice", "lime juice", 1.0, 8, "Interchangeable in most recipes"},
	{"vegetable oil", "canola oil", 1.0, 9, "Direct swap"},
}

func main() {
	// Command line flags
	dryRun := flag.Bool("dry-run", false, "Preview changes without writing to database")
	skipSubs := flag.Bool("skip-substitutions", false, "Seed aliases and weights only")
	flag.Parse()

	// Load .env
	godotenv.Load()

	// Load config
	cfg := config.Load()

	aliasSeeds := services.AliasSeeds()
	weightTable := services.ManualWeightTable()

	if *dryRun {
		log.Println("DRY RUN - No changes will be made")
		printPreview(aliasSeeds, weightTable)
		return
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations so seeding works on a fresh database
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	resolver := services.NewIngredientResolver(db)

	log.Println("Seeding ingredient aliases...")
	seeded := 0
	for canonical, aliases := range aliasSeeds {
		ingredient, err := resolver.Resolve(ctx, canonical)
		if err != nil {
			log.Fatalf("Failed to resolve %q: %v", canonical, err)
		}
		for _, alias := range aliases {
			if err := db.UpsertAlias(ctx, alias, ingredient.ID); err != nil {
				log.Printf("Warning: failed to seed alias %q: %v", alias, err)
				continue
			}
			seeded++
		}
	}
	log.Printf("Seeded %d aliases", seeded)

	log.Println("Seeding unit weights...")
	weighted := 0
	for name, grams := range weightTable {
		ingredient, err := resolver.Resolve(ctx, name)
		if err != nil {
			log.Fatalf("Failed to resolve %q: %v", name, err)
		}
		if ingredient.AvgWeightGrams != nil {
			continue
		}
		if err := db.SetIngredientWeight(ctx, ingredient.ID, grams, services.WeightSourceManual); err != nil {
			log.Printf("Warning: failed to set weight for %q: %v", name, err)
			continue
		}
		weighted++
	}
	log.Printf("Seeded %d unit weights", weighted)

	if *skipSubs {
		log.Println("Skipping substitution rules")
		return
	}

	log.Println("Seeding substitution rules...")
	subs := 0
	for _, s := range starterSubstitutions {
		original, err := resolver.Resolve(ctx, s.Original)
		if err != nil {
			log.Fatalf("Failed to resolve %q: %v", s.Original, err)
		}
		substitute, err := resolver.Resolve(ctx, s.Substitute)
		if err != nil {
			log.Fatalf("Failed to resolve %q: %v", s.Substitute, err)
		}

		// Skip rules that already exist for this pair
		existing, err := db.ListSubstitutionsFor(ctx, original.ID)
		if err != nil {
			log.Fatalf("Failed to list substitutions for %q: %v", s.Original, err)
		}
		duplicate := false
		for _, e := range existing {
			if e.SubstituteIngredientID == substitute.ID {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		notes := s.Notes
		if _, err := db.CreateSubstitution(ctx, &models.CreateSubstitutionRequest{
			OriginalIngredientID:   original.ID,
			SubstituteIngredientID: substitute.ID,
			Ratio:                  s.Ratio,
			QualityScore:           s.QualityScore,
			Notes:                  &notes,
		}); err != nil {
			log.Fatalf("Failed to create substitution %s -> %s: %v", s.Original, s.Substitute, err)
		}
		subs++
	}
	log.Printf("Seeded %d substitution rules", subs)

	log.Println("Seeding complete")
}

// printPreview shows what would be seeded without touching the database
func printPreview(aliasSeeds map[string][]string, weightTable map[string]float64) {
	canonicals := make([]string, 0, len(aliasSeeds))
	for c := range aliasSeeds {
		canonicals = append(canonicals, c)
	}
	sort.Strings(canonicals)

	log.Printf("Would seed aliases for %d canonical ingredients:", len(canonicals))
	for _, c := range canonicals {
		log.Printf("  %s <- %v", c, aliasSeeds[c])
	}

	names := make([]string, 0, len(weightTable))
	for n := range weightTable {
		names = append(names, n)
	}
	sort.Strings(names)

	log.Printf("Would seed %d unit weights:", len(names))
	for _, n := range names {
		log.Printf("  %s = %.0fg", n, weightTable[n])
	}

	log.Printf("Would seed %d substitution rules", len(starterSubstitutions))
}

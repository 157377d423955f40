package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/ovenmitt/pantry-track/internal/config"
	"github.com/ovenmitt/pantry-track/internal/database"
	"github.com/ovenmitt/pantry-track/internal/handlers"
	"github.com/ovenmitt/pantry-track/internal/middleware"
	"github.com/ovenmitt/pantry-track/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create admin user if it doesn't exist
	if err := database.EnsureAdminUser(db, cfg); err != nil {
		log.Printf("Warning: Could not ensure admin user: %v", err)
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Initialize photo storage if S3 is configured
	var photos *services.PhotoStorage
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		photos, err = services.NewPhotoStorage(
			cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
		)
		if err != nil {
			log.Printf("Warning: Failed to initialize photo storage: %v", err)
			photos = nil
		} else if err := photos.EnsureBucket(context.Background()); err != nil {
			log.Printf("Warning: Failed to ensure photo bucket exists: %v", err)
		}
	} else {
		log.Println("S3 credentials not configured, recipe photos disabled")
	}

	// Create handler with dependencies
	h := handlers.New(db, cfg, photos)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/me", middleware.AuthRequired(cfg), h.GetCurrentUser)

	// Item routes (authenticated)
	items := api.Group("/items", middleware.AuthRequired(cfg))
	items.Get("/", h.ListItems)
	items.Get("/:id", h.GetItem)
	items.Post("/", h.CreateItem)
	items.Post("/scan", h.AddItemByBarcode)
	items.Put("/:id", h.UpdateItem)
	items.Delete("/:id", h.DeleteItem)

	// Inventory summary (authenticated)
	api.Get("/inventory", middleware.AuthRequired(cfg), h.GetInventorySummary)

	// Recipe routes (authenticated)
	recipes := api.Group("/recipes", middleware.AuthRequired(cfg))
	recipes.Get("/", h.ListRecipes)
	recipes.Get("/match", h.MatchRecipes)
	recipes.Get("/:id", h.GetRecipe)
	recipes.Post("/", h.CreateRecipe)
	recipes.Delete("/:id", h.DeleteRecipe)
	recipes.Post("/:id/photo", h.UploadRecipePhoto)
	recipes.Get("/:id/photo", h.GetRecipePhotoURL)

	// Ingredient routes (authenticated read, admin write)
	ingredients := api.Group("/ingredients", middleware.AuthRequired(cfg))
	ingredients.Get("/", h.ListIngredients)
	ingredients.Get("/resolve", h.ResolveIngredient)
	ingredients.Post("/seed-aliases", middleware.AdminRequired(), h.SeedAliases)

	// Substitution routes (authenticated read, admin write)
	subs := api.Group("/substitutions", middleware.AuthRequired(cfg))
	subs.Get("/", h.ListSubstitutions)
	subs.Post("/", middleware.AdminRequired(), h.CreateSubstitution)
	subs.Delete("/:id", middleware.AdminRequired(), h.DeleteSubstitution)

	// Get port from environment or default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

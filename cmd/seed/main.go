package main

import (
	"context"
	"flag"
	"log"
	"os"

	"coffeeshop/internal/config"
	"coffeeshop/internal/repository"
	"coffeeshop/internal/seed"
	"coffeeshop/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop", false, "Drop and recreate the drinks table before seeding")
	seedFile := flag.String("file", "", "YAML file with drinks to seed (defaults to the built-in menu)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run -drop in production environment")
	}

	logger, logCloser, err := config.NewLogger(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	drinks, err := seed.LoadFile(*seedFile)
	if err != nil {
		log.Fatalf("Failed to load seed drinks: %v", err)
	}

	log.Printf("🌱 Seeding database (environment: %s, driver: %s, prefix: %s)", cfg.Environment, cfg.DatabaseDriver, cfg.TablePrefix)

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if *dropTables {
		log.Println("🗑️  Dropping drinks table...")
		if err := store.Drinks.ResetSchema(ctx); err != nil {
			log.Fatalf("Failed to reset schema: %v", err)
		}
		log.Println("✅ Table recreated")
	} else if err := store.Drinks.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	drinkService := service.NewDrinkService(store.Drinks, store.TxManager, logger)
	res, err := seed.NewSeeder(drinkService, logger).Apply(ctx, drinks)
	if err != nil {
		log.Fatalf("❌ Seeding failed after %d drinks: %v", res.Created, err)
	}

	log.Printf("🎉 Seeding complete! created: %d, skipped: %d", res.Created, res.Skipped)
}

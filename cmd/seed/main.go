package main

import (
	"context"
	"log"

	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/config"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/db"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/model"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/repository"
)

// defaultCategories are the shared categories every user sees. They are
// immutable and undeletable.
var defaultCategories = []string{
	"Food",
	"Transport",
	"Housing",
	"Utilities",
	"Entertainment",
	"Health",
	"Shopping",
	"Other",
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Category{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	categoryRepo := repository.NewCategoryRepository(gormDB)
	ctx := context.Background()

	created := 0
	for _, name := range defaultCategories {
		_, wasCreated, err := categoryRepo.FirstOrCreateDefault(ctx, name)
		if err != nil {
			log.Fatalf("Failed to seed category %q: %v", name, err)
		}
		if wasCreated {
			created++
		}
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Default categories processed: %d", len(defaultCategories))
	log.Printf("  - Newly created this run: %d", created)
}

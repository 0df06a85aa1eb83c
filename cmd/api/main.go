package main

import (
	"context"
	"log"
	"time"

	"github.com/01moynul/taptosell-catalog/internal/auth"
	"github.com/01moynul/taptosell-catalog/internal/config"
	"github.com/01moynul/taptosell-catalog/internal/database"
	"github.com/01moynul/taptosell-catalog/internal/handlers"
	"github.com/01moynul/taptosell-catalog/internal/logger"
	"github.com/01moynul/taptosell-catalog/internal/routes"
	"github.com/01moynul/taptosell-catalog/internal/session"
	"github.com/01moynul/taptosell-catalog/internal/store"
	"github.com/01moynul/taptosell-catalog/internal/uploads"
	"github.com/01moynul/taptosell-catalog/internal/views"
	"github.com/gin-gonic/gin"
)

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 1. --- Database Connection Pool ---
	db, err := database.OpenDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	catalog := store.NewMySQLStore(db)

	// 2. --- Bootstrap Admin Account (optional) ---
	if cfg.HasBootstrapAdmin() {
		created, err := auth.EnsureAdmin(ctx, catalog, cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			log.Fatalf("Failed to seed admin account: %v", err)
		}
		if created {
			logger.Info("Seeded admin account %q", cfg.AdminUsername)
		}
	}

	// 3. --- Upload Directory ---
	storage, err := uploads.NewStorage(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// 4. --- Views ---
	tmpl, err := views.Load(routes.UploadURL)
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// --- Application Setup ---
	app := handlers.New(catalog, storage)
	router := routes.SetupRouter(app, routes.Options{
		Templates:      tmpl,
		SessionStore:   session.NewStore(cfg.Session),
		UploadDir:      storage.Dir(),
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	// --- Start Server ---
	logger.Info("Starting catalog server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

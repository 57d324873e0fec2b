package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"layout-planner/internal/common/config"
	"layout-planner/internal/common/middleware"
	"layout-planner/internal/planner/handlers"
	"layout-planner/internal/planner/registry"
	"layout-planner/internal/planner/repository"
	"layout-planner/internal/planner/service"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Planner Service
// ============================================================

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	pc := cfg.Planner

	db, err := repository.OpenSQLite(pc.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	storage := service.NewMaterialStorage(pc.MaterialsDir)
	if err := storage.EnsureDir(); err != nil {
		log.Fatalf("materials dir: %v", err)
	}

	store := service.NewStore(service.Options{
		Zoom:           registry.ZoomConfig{Step: pc.ZoomStep, Min: pc.ZoomMin, Max: pc.ZoomMax},
		ViewportWidth:  pc.ViewportWidth,
		ViewportHeight: pc.ViewportHeight,
		Loader:         service.NewImageLoader(storage),
		LoadTimeout:    pc.LoadTimeout,
	})

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Planner Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Routes
	// ============================================================

	handlers.Register(app,
		handlers.NewPlannerHandler(store, repo),
		handlers.NewMaterialHandler(repo, storage),
		handlers.NewHealthHandler(map[string]handlers.Pinger{"db": repo}),
	)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Planner Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

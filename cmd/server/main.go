package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/nagarjunr/donation-tracker/internal/config"     // Internal config loader
	"github.com/nagarjunr/donation-tracker/internal/database"   // MySQL pool setup
	"github.com/nagarjunr/donation-tracker/internal/handler"    // HTTP handlers
	"github.com/nagarjunr/donation-tracker/internal/middleware" // Cache and rate limit middleware
	"github.com/nagarjunr/donation-tracker/internal/queue"      // RabbitMQ audit consumer
	"github.com/nagarjunr/donation-tracker/internal/repository" // Data access layer
	"github.com/nagarjunr/donation-tracker/internal/router"     // Route registration
)

func main() {
	// Load .env if present; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBMaxOpen, cfg.DBMaxIdle)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	e := echo.New()

	// Redis is optional: a nil client disables both the response cache
	// and the rate limiter, and the API serves every request directly.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	items := repository.NewItemRepo(db)
	inventory := repository.NewInventoryRepo(db)
	teams := repository.NewCookingTeamRepo(db)
	bills := repository.NewBillRepo(db)
	allocations := repository.NewAllocationRepo(db)
	staff := repository.NewStaffRepo(db)
	tokens := repository.NewTokenRepo(db)

	catalogH := handler.NewCatalogHandler(items)
	inventoryH := handler.NewInventoryHandler(inventory)
	teamH := handler.NewTeamHandler(teams)
	contribH := handler.NewContributionHandler(bills)
	allocH := handler.NewAllocationHandler(allocations, teams)
	authH := handler.NewAuthHandler(cfg, staff, tokens)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, catalogH, inventoryH, teamH, contribH, allocH)
	router.RegisterStaff(e, catalogH, teamH, contribH, allocH, cfg.JWTSecret)

	// The audit consumer mirrors donation and allocation events into a
	// plain-text log.  It reconnects on its own; a missing broker only
	// costs the audit trail, never the API.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// Package routes wires repositories, services and handlers into the fiber app.
package routes

import (
	domain "finances/internal/domain/ledger"
	"finances/internal/handlers"
	"finances/internal/middleware"
	"finances/internal/repositories"
	"finances/internal/repositories/cache"
	"finances/internal/services/auth"
	"finances/internal/services/ledger"
	"finances/internal/services/stats"
	"finances/internal/services/transfer"
	"finances/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Dependencies are the long-lived resources opened by the process.
type Dependencies struct {
	DB *gorm.DB
	// Cache is nil when caching is disabled.
	Cache *cache.CacheService
	// Notifier is optional.
	Notifier   transfer.NotificationService
	BcryptCost int
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	userRepo := repositories.NewUserRepository(deps.DB, deps.Cache)
	walletRepo := repositories.NewWalletRepository(deps.DB)
	engine := domain.NewEngine()

	// keep a nil *CacheService out of the interfaces below
	var (
		statsCache       stats.Cache
		ledgerInvalidate ledger.StatsInvalidator
		transferStats    transfer.StatsInvalidator
	)
	if deps.Cache != nil {
		statsCache = deps.Cache
		ledgerInvalidate = deps.Cache
		transferStats = deps.Cache
	}

	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo, deps.BcryptCost)
	ledgerService := ledger.NewService(walletRepo, engine, ledgerInvalidate, &ledger.NoopMetricsCollector{})
	transferService := transfer.NewService(userRepo, walletRepo, engine, transferStats, deps.Notifier, &ledger.NoopMetricsCollector{})
	statsService := stats.NewService(walletRepo, statsCache)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	userHandler := handlers.NewUserHandler(userService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	transferHandler := handlers.NewTransferHandler(transferService)
	statsHandler := handlers.NewStatsHandler(statsService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Cache)

	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")
	api.Post("/register", userHandler.Register)

	authenticated := api.Group("/", authMiddleware.Handler)
	authenticated.Post("/transactions", ledgerHandler.AddTransaction)
	authenticated.Get("/transactions", ledgerHandler.ListTransactions)
	authenticated.Post("/budget", ledgerHandler.SetBudget)
	authenticated.Get("/budgets", ledgerHandler.ListBudgets)
	authenticated.Post("/transfer", transferHandler.Transfer)
	authenticated.Get("/stats", statsHandler.GetStats)
}

// Command seed registers a demo user with an opening income.
package main

import (
	"context"
	"errors"
	"log"

	"finances/internal/config"
	domain "finances/internal/domain/ledger"
	domainerrors "finances/internal/errors"
	"finances/internal/models"
	"finances/internal/repositories"
	"finances/internal/repositories/cache"
	"finances/internal/services/ledger"
	"finances/internal/services/user"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	login := config.GetEnv("SEED_LOGIN", "")
	password := config.GetEnv("SEED_PASSWORD", "")
	income := config.GetFloatEnv("SEED_INCOME", 0)

	if login == "" || password == "" {
		log.Fatal("SEED_LOGIN and SEED_PASSWORD must be set in environment")
	}

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Printf("⚠️ Failed to close database connection: %v", err)
		}
	}()

	var (
		cacheService *cache.CacheService
		invalidator  ledger.StatsInvalidator
	)
	if cfg.Redis.Enabled() {
		cacheService = cache.NewCacheService(cache.NewRedisClient(cfg.Redis), cfg.Redis.TTL)
		invalidator = cacheService
		defer cacheService.Close()
	}

	ctx := context.Background()
	userRepo := repositories.NewUserRepository(db, cacheService)
	walletRepo := repositories.NewWalletRepository(db)

	users := user.NewService(userRepo, cfg.BcryptCost)
	ledgerService := ledger.NewService(walletRepo, domain.NewEngine(), invalidator, nil)

	u, err := users.Register(ctx, &models.CreateUserInput{Login: login, Password: password})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateLogin) {
			log.Printf("User %q already exists", login)
			return
		}
		log.Fatalf("Failed to create user: %v", err)
	}

	if income > 0 {
		if _, err := ledgerService.AddTransaction(ctx, u, models.TransactionKindIncome, "Opening balance", income); err != nil {
			log.Fatalf("Failed to record opening income: %v", err)
		}
	}

	log.Printf("✅ Seeded user %q (id %d) with %.2f income", u.Login, u.ID, income)
}

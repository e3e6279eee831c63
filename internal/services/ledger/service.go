package ledger

import (
	"context"
	"log"
	"strings"
	"time"

	domain "finances/internal/domain/ledger"
	domainerrors "finances/internal/errors"
	"finances/internal/models"
	"finances/internal/repositories"
)

const (
	OpAddTransaction = "add_transaction"
	OpSetBudget      = "set_budget"
)

type service struct {
	wallets repositories.WalletRepository
	engine  *domain.Engine
	stats   StatsInvalidator
	metrics MetricsCollector
}

// NewService creates the ledger service. stats and metrics are optional.
func NewService(
	wallets repositories.WalletRepository,
	engine *domain.Engine,
	stats StatsInvalidator,
	metrics MetricsCollector,
) Service {
	if wallets == nil {
		panic("wallet repository is required")
	}
	if engine == nil {
		engine = domain.NewEngine()
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		wallets: wallets,
		engine:  engine,
		stats:   stats,
		metrics: metrics,
	}
}

func (s *service) AddTransaction(ctx context.Context, user *models.User, kind, category string, amount float64) (*models.Transaction, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(OpAddTransaction, time.Since(start)) }()

	kind, err := domain.ParseKind(kind)
	if err != nil {
		return nil, s.fail(OpAddTransaction, err)
	}
	category = strings.TrimSpace(category)

	var created *models.Transaction
	err = s.withWallet(ctx, user, func(agg *domain.Wallet) error {
		tx, err := s.engine.RecordTransaction(agg, kind, category, amount)
		if err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, s.fail(OpAddTransaction, err)
	}

	s.metrics.RecordOperationResult(OpAddTransaction, "success")
	s.invalidate(ctx, user.ID)
	return created, nil
}

func (s *service) SetBudget(ctx context.Context, user *models.User, category string, limit float64) (*models.Budget, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(OpSetBudget, time.Since(start)) }()

	category = strings.TrimSpace(category)

	var budget *models.Budget
	err := s.withWallet(ctx, user, func(agg *domain.Wallet) error {
		b, err := s.engine.SetBudget(agg, category, limit)
		if err != nil {
			return err
		}
		budget = b
		return nil
	})
	if err != nil {
		return nil, s.fail(OpSetBudget, err)
	}

	s.metrics.RecordOperationResult(OpSetBudget, "success")
	s.invalidate(ctx, user.ID)
	return budget, nil
}

func (s *service) History(ctx context.Context, user *models.User, limit, offset int) ([]models.Transaction, int64, error) {
	wallet, err := s.wallets.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, 0, repositories.ToDomainError(err)
	}
	transactions, total, err := s.wallets.ListTransactions(ctx, wallet.ID, limit, offset)
	if err != nil {
		return nil, 0, repositories.ToDomainError(err)
	}
	return transactions, total, nil
}

func (s *service) Budgets(ctx context.Context, user *models.User) ([]models.Budget, error) {
	wallet, err := s.wallets.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, repositories.ToDomainError(err)
	}
	budgets, err := s.wallets.ListBudgets(ctx, wallet.ID)
	if err != nil {
		return nil, repositories.ToDomainError(err)
	}
	return budgets, nil
}

// withWallet runs mutate against the user's wallet under its lock and persists
// the result. A mutate error rolls everything back.
func (s *service) withWallet(ctx context.Context, user *models.User, mutate func(*domain.Wallet) error) error {
	wallet, err := s.wallets.GetByUserID(ctx, user.ID)
	if err != nil {
		return err
	}

	return s.wallets.WithWalletLocks(ctx, []uint{wallet.ID}, func(repo repositories.WalletRepository) error {
		agg, err := repo.LoadAggregate(ctx, wallet.ID)
		if err != nil {
			return err
		}
		if err := mutate(agg); err != nil {
			return err
		}
		return repo.SaveAggregate(ctx, agg)
	})
}

func (s *service) fail(operation string, err error) error {
	err = repositories.ToDomainError(err)
	code := domainerrors.Code(err)
	if code == domainerrors.CodeStorageUnavailable {
		log.Printf("%s: storage failure: %v", operation, err)
	}
	s.metrics.RecordError(operation, code)
	s.metrics.RecordOperationResult(operation, "failure")
	return err
}

func (s *service) invalidate(ctx context.Context, userIDs ...uint) {
	if s.stats == nil {
		return
	}
	if err := s.stats.InvalidateStats(ctx, userIDs...); err != nil {
		log.Printf("Warning: failed to invalidate stats cache for users %v: %v", userIDs, err)
	}
}

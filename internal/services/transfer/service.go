package transfer

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	domain "finances/internal/domain/ledger"
	domainerrors "finances/internal/errors"
	"finances/internal/models"
	"finances/internal/repositories"
	"finances/internal/services/ledger"

	"github.com/google/uuid"
)

const OpTransfer = "transfer"

// service implements the transfer Service interface.
type service struct {
	users    repositories.UserRepository
	wallets  repositories.WalletRepository
	engine   *domain.Engine
	stats    StatsInvalidator
	notifier NotificationService
	metrics  ledger.MetricsCollector
}

// NewService creates a new transfer service instance. stats, notifier and
// metrics are optional.
func NewService(
	users repositories.UserRepository,
	wallets repositories.WalletRepository,
	engine *domain.Engine,
	stats StatsInvalidator,
	notifier NotificationService,
	metrics ledger.MetricsCollector,
) Service {
	if users == nil {
		panic("user repository is required")
	}
	if wallets == nil {
		panic("wallet repository is required")
	}
	if engine == nil {
		engine = domain.NewEngine()
	}
	if metrics == nil {
		metrics = &ledger.NoopMetricsCollector{}
	}
	return &service{
		users:    users,
		wallets:  wallets,
		engine:   engine,
		stats:    stats,
		notifier: notifier,
		metrics:  metrics,
	}
}

// Transfer debits the sender and credits the recipient in one commit. Both
// wallets are locked in ascending id order, so opposite transfers between the
// same pair cannot deadlock.
func (s *service) Transfer(ctx context.Context, from *models.User, toLogin string, amount float64) (*models.TransferResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(OpTransfer, time.Since(start)) }()

	if !domain.ValidAmount(amount) {
		return nil, s.fail(domainerrors.ErrInvalidAmount)
	}

	to, err := s.users.GetByLogin(ctx, strings.TrimSpace(toLogin))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, s.fail(domainerrors.ErrNotFound.Withf("recipient %q not found", toLogin))
		}
		return nil, s.fail(err)
	}
	if to.ID == from.ID {
		return nil, s.fail(domainerrors.ErrSelfTransfer)
	}

	fromWallet, err := s.wallets.GetByUserID(ctx, from.ID)
	if err != nil {
		return nil, s.fail(err)
	}
	toWallet, err := s.wallets.GetByUserID(ctx, to.ID)
	if err != nil {
		return nil, s.fail(err)
	}

	req := domain.TransferRequest{
		Amount:    amount,
		FromLogin: from.Login,
		ToLogin:   to.Login,
		Reference: uuid.NewString(),
	}

	result := &models.TransferResult{
		Reference: req.Reference,
		FromLogin: from.Login,
		ToLogin:   to.Login,
		Amount:    amount,
	}
	err = s.wallets.WithWalletLocks(ctx, []uint{fromWallet.ID, toWallet.ID}, func(repo repositories.WalletRepository) error {
		fromAgg, err := repo.LoadAggregate(ctx, fromWallet.ID)
		if err != nil {
			return err
		}
		toAgg, err := repo.LoadAggregate(ctx, toWallet.ID)
		if err != nil {
			return err
		}

		debit, credit, err := s.engine.Transfer(fromAgg, toAgg, req)
		if err != nil {
			return err
		}
		if err := repo.SaveAggregate(ctx, fromAgg); err != nil {
			return err
		}
		if err := repo.SaveAggregate(ctx, toAgg); err != nil {
			return err
		}

		result.Debit = debit
		result.Credit = credit
		result.CreatedAt = debit.CreatedAt
		return nil
	})
	if err != nil {
		return nil, s.fail(err)
	}

	s.metrics.RecordOperationResult(OpTransfer, "success")
	log.Printf("Transfer %s committed: %s -> %s %.2f", result.Reference, result.FromLogin, result.ToLogin, amount)

	if s.stats != nil {
		if err := s.stats.InvalidateStats(ctx, from.ID, to.ID); err != nil {
			log.Printf("Warning: failed to invalidate stats cache after transfer %s: %v", result.Reference, err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.TransferCompleted(ctx, result); err != nil {
			log.Printf("Warning: failed to send notification for transfer %s: %v", result.Reference, err)
		}
	}

	return result, nil
}

func (s *service) fail(err error) error {
	err = repositories.ToDomainError(err)
	code := domainerrors.Code(err)
	if code == domainerrors.CodeStorageUnavailable {
		log.Printf("transfer: storage failure: %v", err)
	}
	s.metrics.RecordError(OpTransfer, code)
	s.metrics.RecordOperationResult(OpTransfer, "failure")
	return err
}

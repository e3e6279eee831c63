package repositories

import (
	"context"
	"errors"

	"finances/internal/domain/ledger"
	"finances/internal/models"
)

var (
	ErrWalletNotFound = errors.New("wallet not found")
	ErrNestedLock     = errors.New("wallet locks already held by this unit of work")
)

// WalletRepository loads and persists wallet aggregates.
type WalletRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error)

	// LoadAggregate reads the wallet with its full history and budgets.
	LoadAggregate(ctx context.Context, walletID uint) (*ledger.Wallet, error)

	// SaveAggregate inserts pending transactions and upserts changed budgets,
	// then clears the aggregate's change set.
	SaveAggregate(ctx context.Context, agg *ledger.Wallet) error

	// WithWalletLocks runs fn inside one database transaction holding exclusive
	// locks on every listed wallet. Locks are taken in ascending id order.
	// fn must use the repository it is given; returning an error rolls back.
	WithWalletLocks(ctx context.Context, walletIDs []uint, fn func(WalletRepository) error) error

	// ListTransactions returns a page of history, newest first, and the total count.
	ListTransactions(ctx context.Context, walletID uint, limit, offset int) ([]models.Transaction, int64, error)

	ListBudgets(ctx context.Context, walletID uint) ([]models.Budget, error)
}

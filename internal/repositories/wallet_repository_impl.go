package repositories

import (
	"context"
	"errors"
	"fmt"

	"finances/internal/domain/ledger"
	"finances/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db    *gorm.DB
	locks *walletLocks
	inTx  bool
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db:    db,
		locks: newWalletLocks(),
	}
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) LoadAggregate(ctx context.Context, walletID uint) (*ledger.Wallet, error) {
	db := r.db.WithContext(ctx)

	var wallet models.Wallet
	if err := db.First(&wallet, walletID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	var transactions []models.Transaction
	if err := db.Where("wallet_id = ?", walletID).Order("id ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	var budgets []models.Budget
	if err := db.Where("wallet_id = ?", walletID).Order("id ASC").Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	return ledger.NewWallet(wallet, transactions, budgets), nil
}

func (r *walletRepository) SaveAggregate(ctx context.Context, agg *ledger.Wallet) error {
	if !agg.HasChanges() {
		return nil
	}

	save := func(tx *gorm.DB) error {
		for _, t := range agg.PendingTransactions() {
			if err := tx.Create(t).Error; err != nil {
				return fmt.Errorf("failed to create transaction: %w", err)
			}
		}
		for _, b := range agg.DirtyBudgets() {
			if err := tx.Save(b).Error; err != nil {
				return fmt.Errorf("failed to save budget %q: %w", b.Category, err)
			}
		}
		return nil
	}

	var err error
	if r.inTx {
		err = save(r.db.WithContext(ctx))
	} else {
		err = r.db.WithContext(ctx).Transaction(save)
	}
	if err != nil {
		return err
	}

	agg.MarkCommitted()
	return nil
}

func (r *walletRepository) WithWalletLocks(ctx context.Context, walletIDs []uint, fn func(WalletRepository) error) error {
	if r.inTx {
		return ErrNestedLock
	}

	ids := sortedUnique(walletIDs)
	unlock, err := r.locks.acquireAll(ctx, ids)
	if err != nil {
		return err
	}
	defer unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked []models.Wallet
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", ids).
			Order("id ASC").
			Find(&locked).Error
		if err != nil {
			return fmt.Errorf("failed to lock wallets: %w", err)
		}
		if len(locked) != len(ids) {
			return ErrWalletNotFound
		}

		return fn(&walletRepository{db: tx, locks: r.locks, inTx: true})
	})
}

func (r *walletRepository) ListTransactions(ctx context.Context, walletID uint, limit, offset int) ([]models.Transaction, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("wallet_id = ?", walletID).
		Session(&gorm.Session{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var transactions []models.Transaction
	err := db.Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get transaction history: %w", err)
	}
	return transactions, total, nil
}

func (r *walletRepository) ListBudgets(ctx context.Context, walletID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := r.db.WithContext(ctx).Where("wallet_id = ?", walletID).Order("id ASC").Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

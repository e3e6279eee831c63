package repositories_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"finances/internal/domain/ledger"
	"finances/internal/models"
	"finances/internal/repositories"
	"finances/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, users repositories.UserRepository, login string) *models.User {
	t.Helper()
	user := &models.User{Login: login, Password: "hash"}
	require.NoError(t, users.Create(context.Background(), user))
	require.NotNil(t, user.Wallet)
	return user
}

func TestUserRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	users := repositories.NewUserRepository(db, nil)
	ctx := context.Background()

	alice := register(t, users, "alice")
	assert.NotZero(t, alice.ID)
	assert.Equal(t, alice.ID, alice.Wallet.UserID)

	t.Run("lookup by id and login", func(t *testing.T) {
		byID, err := users.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Login)

		byLogin, err := users.GetByLogin(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byLogin.ID)
	})

	t.Run("credentials carry the stored hash", func(t *testing.T) {
		creds, err := users.GetCredentials(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, creds.ID)
		assert.Equal(t, "hash", creds.Password)

		_, err = users.GetCredentials(ctx, "nobody")
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	})

	t.Run("login is matched exactly", func(t *testing.T) {
		_, err := users.GetByLogin(ctx, "ALICE")
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := users.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	})

	t.Run("duplicate login", func(t *testing.T) {
		err := users.Create(ctx, &models.User{Login: "alice", Password: "other"})
		assert.ErrorIs(t, err, repositories.ErrLoginTaken)
	})
}

func TestWalletRepositoryRoundTrip(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	users := repositories.NewUserRepository(db, nil)
	wallets := repositories.NewWalletRepository(db)
	engine := ledger.NewEngine()
	ctx := context.Background()

	user := register(t, users, "bob")
	wallet, err := wallets.GetByUserID(ctx, user.ID)
	require.NoError(t, err)

	agg, err := wallets.LoadAggregate(ctx, wallet.ID)
	require.NoError(t, err)
	_, err = engine.RecordTransaction(agg, "income", "salary", 100)
	require.NoError(t, err)
	_, err = engine.RecordTransaction(agg, "expense", "Food", 20)
	require.NoError(t, err)
	_, err = engine.SetBudget(agg, "food", 50)
	require.NoError(t, err)
	require.NoError(t, wallets.SaveAggregate(ctx, agg))
	assert.False(t, agg.HasChanges())

	// overwrite rather than duplicate
	_, err = engine.SetBudget(agg, "FOOD", 30)
	require.NoError(t, err)
	require.NoError(t, wallets.SaveAggregate(ctx, agg))

	reloaded, err := wallets.LoadAggregate(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, reloaded.TotalIncome())
	assert.Equal(t, 20.0, reloaded.TotalExpenses())
	b, ok := reloaded.FindBudget("Food")
	require.True(t, ok)
	assert.Equal(t, 30.0, b.Limit)
	assert.Equal(t, "food", b.Category)

	budgets, err := wallets.ListBudgets(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Len(t, budgets, 1)

	history, total, err := wallets.ListTransactions(ctx, wallet.ID, 1, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, history, 1)
	assert.Equal(t, models.TransactionKindExpense, history[0].Kind)
}

func TestWithWalletLocksRollsBack(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	users := repositories.NewUserRepository(db, nil)
	wallets := repositories.NewWalletRepository(db)
	engine := ledger.NewEngine()
	ctx := context.Background()

	a := register(t, users, "a-user")
	b := register(t, users, "b-user")
	boom := errors.New("boom")

	err := wallets.WithWalletLocks(ctx, []uint{b.Wallet.ID, a.Wallet.ID}, func(repo repositories.WalletRepository) error {
		agg, err := repo.LoadAggregate(ctx, a.Wallet.ID)
		if err != nil {
			return err
		}
		if _, err := engine.RecordTransaction(agg, "income", "salary", 10); err != nil {
			return err
		}
		if err := repo.SaveAggregate(ctx, agg); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	agg, err := wallets.LoadAggregate(ctx, a.Wallet.ID)
	require.NoError(t, err)
	assert.Empty(t, agg.Transactions())
}

func TestWithWalletLocksUnknownWallet(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	wallets := repositories.NewWalletRepository(db)

	called := false
	err := wallets.WithWalletLocks(context.Background(), []uint{42}, func(repositories.WalletRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, repositories.ErrWalletNotFound)
	assert.False(t, called)
}

func TestWithWalletLocksNoLostUpdates(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	users := repositories.NewUserRepository(db, nil)
	wallets := repositories.NewWalletRepository(db)
	engine := ledger.NewEngine()
	ctx := context.Background()

	user := register(t, users, "racer")
	walletID := user.Wallet.ID

	require.NoError(t, wallets.WithWalletLocks(ctx, []uint{walletID}, func(repo repositories.WalletRepository) error {
		agg, err := repo.LoadAggregate(ctx, walletID)
		if err != nil {
			return err
		}
		if _, err := engine.RecordTransaction(agg, "income", "salary", 50); err != nil {
			return err
		}
		return repo.SaveAggregate(ctx, agg)
	}))

	// 20 concurrent expenses of 5 against an income of 50: exactly 10 fit.
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := wallets.WithWalletLocks(ctx, []uint{walletID}, func(repo repositories.WalletRepository) error {
				agg, err := repo.LoadAggregate(ctx, walletID)
				if err != nil {
					return err
				}
				if _, err := engine.RecordTransaction(agg, "expense", "misc", 5); err != nil {
					return err
				}
				return repo.SaveAggregate(ctx, agg)
			})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	agg, err := wallets.LoadAggregate(ctx, walletID)
	require.NoError(t, err)
	assert.Equal(t, 10, accepted)
	assert.Equal(t, 50.0, agg.TotalExpenses())
	assert.LessOrEqual(t, agg.TotalExpenses(), agg.TotalIncome())
}

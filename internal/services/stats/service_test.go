package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "finances/internal/domain/ledger"
	domainerrors "finances/internal/errors"
	"finances/internal/models"
	"finances/internal/repositories"
	"finances/internal/repositories/cache"
	"finances/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetStats(ctx context.Context, userID uint) (*models.StatsView, error) {
	args := m.Called(ctx, userID)
	view, _ := args.Get(0).(*models.StatsView)
	return view, args.Error(1)
}

func (m *MockCache) SetStats(ctx context.Context, userID uint, view *models.StatsView) error {
	args := m.Called(ctx, userID, view)
	return args.Error(0)
}

func (m *MockCache) InvalidateStats(ctx context.Context, userIDs ...uint) error {
	args := m.Called(ctx, userIDs)
	return args.Error(0)
}

func seedWallet(t *testing.T) (repositories.WalletRepository, *models.User) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	users := repositories.NewUserRepository(db, nil)
	wallets := repositories.NewWalletRepository(db)
	ctx := context.Background()

	user := &models.User{Login: "carol", Password: "hash"}
	require.NoError(t, users.Create(ctx, user))

	engine := domain.NewEngine()
	agg, err := wallets.LoadAggregate(ctx, user.Wallet.ID)
	require.NoError(t, err)
	_, err = engine.RecordTransaction(agg, "income", "salary", 100)
	require.NoError(t, err)
	_, err = engine.RecordTransaction(agg, "income", "salary", 40)
	require.NoError(t, err)
	_, err = engine.SetBudget(agg, "Food", 30)
	require.NoError(t, err)
	_, err = engine.RecordTransaction(agg, "expense", "food", 20)
	require.NoError(t, err)
	require.NoError(t, wallets.SaveAggregate(ctx, agg))

	return wallets, user
}

func TestGetStats_ProjectsAndCaches(t *testing.T) {
	wallets, user := seedWallet(t)
	c := new(MockCache)
	c.On("GetStats", mock.Anything, user.ID).Return(nil, cache.ErrCacheMiss).Once()
	c.On("SetStats", mock.Anything, user.ID, mock.AnythingOfType("*models.StatsView")).Return(nil).Once()

	view, err := NewService(wallets, c).GetStats(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, "carol", view.User)
	assert.Equal(t, 140.0, view.TotalIncome)
	assert.Equal(t, 20.0, view.TotalExpenses)
	assert.Equal(t, 120.0, view.Balance)
	// last income in a category wins
	assert.Equal(t, map[string]float64{"salary": 40}, view.IncomeByCategory)
	assert.Equal(t, models.BudgetView{Limit: 30, Spent: 20, Remaining: 10}, view.Budgets["Food"])
	c.AssertExpectations(t)
}

func TestGetStats_CacheHit(t *testing.T) {
	wallets, user := seedWallet(t)
	cached := &models.StatsView{User: "carol", TotalIncome: 1}
	c := new(MockCache)
	c.On("GetStats", mock.Anything, user.ID).Return(cached, nil).Once()

	view, err := NewService(wallets, c).GetStats(context.Background(), user)
	require.NoError(t, err)
	assert.Same(t, cached, view)
	c.AssertExpectations(t)
}

func TestGetStats_CacheFailureFallsBackToStore(t *testing.T) {
	wallets, user := seedWallet(t)
	c := new(MockCache)
	c.On("GetStats", mock.Anything, user.ID).Return(nil, errors.New("redis down"))
	c.On("SetStats", mock.Anything, user.ID, mock.Anything).Return(errors.New("redis down"))

	view, err := NewService(wallets, c).GetStats(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 140.0, view.TotalIncome)
}

func TestGetStats_WithoutCache(t *testing.T) {
	wallets, user := seedWallet(t)

	view, err := NewService(wallets, nil).GetStats(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 20.0, view.TotalExpenses)
}

func TestGetStats_UnknownUser(t *testing.T) {
	wallets, _ := seedWallet(t)

	_, err := NewService(wallets, nil).GetStats(context.Background(), &models.User{ID: 404, Login: "ghost"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGetStats_CancelledCallerDoesNotFailSharedProjection(t *testing.T) {
	wallets, user := seedWallet(t)
	svc := NewService(wallets, nil)

	// hold the wallet so the projection cannot finish yet
	held := make(chan struct{})
	release := make(chan struct{})
	holderDone := make(chan error, 1)
	go func() {
		holderDone <- wallets.WithWalletLocks(context.Background(), []uint{user.Wallet.ID}, func(repositories.WalletRepository) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	type result struct {
		view *models.StatsView
		err  error
	}
	ctx1, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := make(chan result, 1)
	go func() {
		view, err := svc.GetStats(ctx1, user)
		first <- result{view, err}
	}()
	time.Sleep(50 * time.Millisecond)

	second := make(chan result, 1)
	go func() {
		view, err := svc.GetStats(context.Background(), user)
		second <- result{view, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	select {
	case r := <-first:
		assert.ErrorIs(t, r.err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(release)
	require.NoError(t, <-holderDone)

	select {
	case r := <-second:
		require.NoError(t, r.err)
		assert.Equal(t, 140.0, r.view.TotalIncome)
	case <-time.After(5 * time.Second):
		t.Fatal("live caller did not return")
	}
}

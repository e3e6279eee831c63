package ledger

import (
	"context"
	"testing"
	"time"

	domain "finances/internal/domain/ledger"
	domainerrors "finances/internal/errors"
	"finances/internal/models"
	"finances/internal/repositories"
	"finances/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStats struct {
	mock.Mock
}

func (m *MockStats) InvalidateStats(ctx context.Context, userIDs ...uint) error {
	args := m.Called(ctx, userIDs)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	m.Called(operation, duration)
}

func (m *MockMetrics) RecordOperationResult(operation, result string) {
	m.Called(operation, result)
}

func (m *MockMetrics) RecordError(operation, code string) {
	m.Called(operation, code)
}

type fixture struct {
	svc     Service
	user    *models.User
	stats   *MockStats
	metrics *MockMetrics
	wallets repositories.WalletRepository
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewSQLiteDB(t)
	users := repositories.NewUserRepository(db, nil)
	wallets := repositories.NewWalletRepository(db)

	user := &models.User{Login: "alice", Password: "hash"}
	require.NoError(t, users.Create(context.Background(), user))

	stats := new(MockStats)
	metrics := new(MockMetrics)
	metrics.On("RecordOperationDuration", mock.Anything, mock.Anything).Maybe()

	return &fixture{
		svc:     NewService(wallets, domain.NewEngine(), stats, metrics),
		user:    user,
		stats:   stats,
		metrics: metrics,
		wallets: wallets,
	}
}

func TestService_AddTransaction(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		category string
		amount   float64
		setup    func(*fixture)
		wantCode string
	}{
		{
			name:     "income is accepted",
			kind:     "income",
			category: "salary",
			amount:   100,
		},
		{
			name:     "kind is case-insensitive",
			kind:     "INCOME",
			category: "salary",
			amount:   100,
		},
		{
			name:     "expense above income",
			kind:     "expense",
			category: "rent",
			amount:   150,
			wantCode: domainerrors.CodeInsufficientFunds,
		},
		{
			name:     "unknown kind",
			kind:     "refund",
			category: "x",
			amount:   1,
			wantCode: domainerrors.CodeInvalidKind,
		},
		{
			name:     "negative amount",
			kind:     "income",
			category: "salary",
			amount:   -1,
			wantCode: domainerrors.CodeInvalidAmount,
		},
		{
			name:     "budget exceeded",
			kind:     "expense",
			category: "Food",
			amount:   35,
			setup: func(f *fixture) {
				f.stats.On("InvalidateStats", mock.Anything, []uint{f.user.ID}).Return(nil)
				f.metrics.On("RecordOperationResult", mock.Anything, "success")
				_, err := f.svc.AddTransaction(context.Background(), f.user, "income", "salary", 100)
				require.NoError(t, err)
				_, err = f.svc.SetBudget(context.Background(), f.user, "food", 30)
				require.NoError(t, err)
			},
			wantCode: domainerrors.CodeBudgetExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			if tt.wantCode == "" {
				f.stats.On("InvalidateStats", mock.Anything, []uint{f.user.ID}).Return(nil).Once()
				f.metrics.On("RecordOperationResult", OpAddTransaction, "success").Once()
			} else {
				f.metrics.On("RecordError", OpAddTransaction, tt.wantCode).Once()
				f.metrics.On("RecordOperationResult", OpAddTransaction, "failure").Once()
			}

			before := len(mustLoad(t, f).Transactions())
			tx, err := f.svc.AddTransaction(context.Background(), f.user, tt.kind, tt.category, tt.amount)
			after := mustLoad(t, f).Transactions()

			if tt.wantCode != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, domainerrors.Code(err))
				assert.Nil(t, tx)
				assert.Len(t, after, before)
			} else {
				require.NoError(t, err)
				assert.NotZero(t, tx.ID)
				assert.Len(t, after, before+1)
			}

			f.stats.AssertExpectations(t)
			f.metrics.AssertExpectations(t)
		})
	}
}

func TestService_SetBudgetOverwrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stats.On("InvalidateStats", mock.Anything, []uint{f.user.ID}).Return(nil).Twice()
	f.metrics.On("RecordOperationResult", OpSetBudget, "success").Twice()

	first, err := f.svc.SetBudget(ctx, f.user, "food", 100)
	require.NoError(t, err)
	second, err := f.svc.SetBudget(ctx, f.user, " Food ", 100)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	budgets, err := f.svc.Budgets(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, 100.0, budgets[0].Limit)
}

func TestService_History(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stats.On("InvalidateStats", mock.Anything, mock.Anything).Return(nil)
	f.metrics.On("RecordOperationResult", mock.Anything, mock.Anything)

	for _, category := range []string{"a", "b", "c"} {
		_, err := f.svc.AddTransaction(ctx, f.user, "income", category, 10)
		require.NoError(t, err)
	}

	page, total, err := f.svc.History(ctx, f.user, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].Category)

	page, _, err = f.svc.History(ctx, f.user, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "a", page[0].Category)
}

func TestService_UnknownUser(t *testing.T) {
	f := newFixture(t)
	f.metrics.On("RecordError", OpAddTransaction, domainerrors.CodeNotFound).Once()
	f.metrics.On("RecordOperationResult", OpAddTransaction, "failure").Once()

	_, err := f.svc.AddTransaction(context.Background(), &models.User{ID: 999}, "income", "x", 1)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	f.metrics.AssertExpectations(t)
}

func mustLoad(t *testing.T, f *fixture) *domain.Wallet {
	t.Helper()
	agg, err := f.wallets.LoadAggregate(context.Background(), f.user.Wallet.ID)
	require.NoError(t, err)
	return agg
}

package ledger

import (
	"context"
	"time"

	"finances/internal/models"
)

// Service applies ledger operations to the wallet of an authenticated user.
type Service interface {
	AddTransaction(ctx context.Context, user *models.User, kind, category string, amount float64) (*models.Transaction, error)
	SetBudget(ctx context.Context, user *models.User, category string, limit float64) (*models.Budget, error)

	// History returns the user's transactions newest first.
	History(ctx context.Context, user *models.User, limit, offset int) ([]models.Transaction, int64, error)
	Budgets(ctx context.Context, user *models.User) ([]models.Budget, error)
}

// StatsInvalidator drops cached stats of users whose wallet changed.
type StatsInvalidator interface {
	InvalidateStats(ctx context.Context, userIDs ...uint) error
}

// MetricsCollector receives operation outcomes.
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordError(operation, code string)
}

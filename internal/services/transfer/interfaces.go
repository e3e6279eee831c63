package transfer

import (
	"context"

	"finances/internal/models"
)

// NotificationService is told about committed transfers.
type NotificationService interface {
	TransferCompleted(ctx context.Context, result *models.TransferResult) error
}

// StatsInvalidator drops cached stats of the users a transfer touched.
type StatsInvalidator interface {
	InvalidateStats(ctx context.Context, userIDs ...uint) error
}

// Service moves balance between two users' wallets.
type Service interface {
	Transfer(ctx context.Context, from *models.User, toLogin string, amount float64) (*models.TransferResult, error)
}

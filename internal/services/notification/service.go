package notification

import (
	"context"
	"log"

	"finances/internal/models"
)

// Notifier is told about every committed transfer. Implementations must not
// assume the caller retries: a failed notification is only logged.
type Notifier interface {
	TransferCompleted(ctx context.Context, result *models.TransferResult) error
	Close() error
}

// LogNotifier writes transfer notifications to the process log.
type LogNotifier struct{}

// NewLogNotifier is used when no message broker is configured.
func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) TransferCompleted(ctx context.Context, result *models.TransferResult) error {
	log.Printf("Transfer %s: %s -> %s %.2f", result.Reference, result.FromLogin, result.ToLogin, result.Amount)
	return nil
}

func (n *LogNotifier) Close() error { return nil }

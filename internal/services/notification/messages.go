package notification

import (
	"encoding/json"
	"time"

	"finances/internal/models"

	"github.com/google/uuid"
)

const EventTransferCompleted = "transfer.completed"

// TransferEvent is the message published for a committed transfer.
type TransferEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Reference  string    `json:"reference"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewTransferEvent(result *models.TransferResult) *TransferEvent {
	return &TransferEvent{
		ID:         uuid.NewString(),
		Type:       EventTransferCompleted,
		Reference:  result.Reference,
		From:       result.FromLogin,
		To:         result.ToLogin,
		Amount:     result.Amount,
		OccurredAt: result.CreatedAt,
	}
}

// ToJSON converts the event to JSON bytes
func (e *TransferEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransferEventFromJSON(data []byte) (*TransferEvent, error) {
	var e TransferEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

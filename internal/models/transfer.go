package models

import "time"

type TransferInput struct {
	ToLogin string   `json:"to_login" validate:"required"`
	Amount  *float64 `json:"amount" validate:"required"`
}

// TransferResult describes a committed transfer.
type TransferResult struct {
	Reference string       `json:"reference"`
	FromLogin string       `json:"from"`
	ToLogin   string       `json:"to"`
	Amount    float64      `json:"amount"`
	Debit     *Transaction `json:"debit"`
	Credit    *Transaction `json:"credit"`
	CreatedAt time.Time    `json:"created_at"`
}

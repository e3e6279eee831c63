package models

import (
	"time"
)

// Transaction kinds
const (
	TransactionKindIncome  = "income"
	TransactionKindExpense = "expense"
)

// Transaction is immutable once created.
type Transaction struct {
	ID       uint    `gorm:"primarykey" json:"id"`
	WalletID uint    `gorm:"index;not null" json:"wallet_id"`
	Kind     string  `gorm:"not null" json:"type"`
	Category string  `gorm:"not null" json:"category"`
	Amount   float64 `gorm:"not null" json:"amount"`
	// Reference links the two halves of a transfer. Empty for manual entries.
	Reference string    `gorm:"index" json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateTransactionInput struct {
	Type     string   `json:"type" validate:"required"`
	Category string   `json:"category" validate:"required,max=128"`
	Amount   *float64 `json:"amount" validate:"required"`
}

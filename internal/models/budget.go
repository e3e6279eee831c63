package models

import (
	"time"
)

// Budget is a spending ceiling for one category of one wallet.
// CategoryKey is the case-folded category and is unique per wallet.
type Budget struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	WalletID    uint      `gorm:"not null;uniqueIndex:idx_budgets_wallet_category" json:"wallet_id"`
	Category    string    `gorm:"not null" json:"category"`
	CategoryKey string    `gorm:"not null;uniqueIndex:idx_budgets_wallet_category" json:"-"`
	Limit       float64   `gorm:"column:limit_amount;not null" json:"limit"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SetBudgetInput struct {
	Category string   `json:"category" validate:"required,max=128"`
	Amount   *float64 `json:"amount" validate:"required"`
}

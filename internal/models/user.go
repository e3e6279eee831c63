package models

import (
	"time"
)

// User owns exactly one Wallet. The Wallet association is only used to cascade
// wallet creation on registration; Wallet refers back by UserID alone.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Login     string    `gorm:"uniqueIndex;not null" json:"login"`
	Password  string    `gorm:"not null" json:"-"`
	Wallet    *Wallet   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"wallet,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUserInput struct {
	Login    string `json:"login" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=4,max=72"`
}

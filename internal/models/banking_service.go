package models

import (
	"time"

	"gorm.io/gorm"
)

// BankingService is a payout channel users can pick for withdrawals
// (mobile banking provider or branch payout).
type BankingService struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Kind         string         `gorm:"size:20;not null;default:'mobile'" json:"kind"` // mobile | branch
	AccountLabel string         `gorm:"size:100" json:"accountLabel"`
	Active       bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BankingService) TableName() string { return "banking_services" }

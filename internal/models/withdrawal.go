package models

import (
	"time"

	"gorm.io/gorm"
)

// Withdrawal is a payout request. Amount is the gross deduction from
// totalBalance; NetAmount (gross minus fee) is what moves through
// pendingAmount and is eventually paid out.
type Withdrawal struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"userId"`
	OrderID       string         `gorm:"size:64;uniqueIndex;not null" json:"orderId"`
	Amount        float64        `gorm:"not null" json:"amount"`
	Fee           float64        `gorm:"not null" json:"fee"`
	NetAmount     float64        `gorm:"not null" json:"netAmount"`
	Method        string         `gorm:"size:30;not null" json:"method"` // mobile banking service name or "branch"
	AccountNumber string         `gorm:"size:30" json:"accountNumber"`
	Status        string         `gorm:"size:20;not null;index" json:"status"` // PENDING, COMPLETED, REJECTED
	ProcessedByID *uint          `json:"processedById"`
	ProcessedAt   *time.Time     `json:"processedAt"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Withdrawal) TableName() string { return "withdrawals" }

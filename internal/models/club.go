package models

import (
	"time"
)

// Club is an income-generating unit owned by one user. Serial numbers
// are globally unique and strictly increasing in creation order.
type Club struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OwnerID      uint      `gorm:"not null;index" json:"ownerId"`
	SerialNumber uint64    `gorm:"uniqueIndex;not null" json:"serialNumber"`
	Source       string    `gorm:"size:20;not null;default:'AUTO'" json:"source"`
	CreatedAt    time.Time `json:"createdAt"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Club) TableName() string { return "clubs" }

// ClubsBonus is one realized bonus step for a club. At most
// domain.MaxBonusSteps rows exist per club; rows are never removed.
type ClubsBonus struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClubID    uint      `gorm:"not null;index" json:"clubId"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Status    string    `gorm:"size:20;not null;default:'Complete'" json:"status"`
	CreatedAt time.Time `json:"createdAt"`

	Club Club `gorm:"foreignKey:ClubID" json:"-"`
}

func (ClubsBonus) TableName() string { return "clubs_bonuses" }

package models

import (
	"time"

	"gorm.io/gorm"
)

// Package is a purchasable plan. Its price is handed to the club
// allocator as a deposit; DailyAdLimit caps ad-watch rewards per day.
type Package struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Price        float64        `gorm:"not null" json:"price"`
	DailyAdLimit int            `gorm:"not null;default:5" json:"dailyAdLimit"`
	Description  string         `gorm:"size:500" json:"description"`
	Active       bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Package) TableName() string { return "packages" }

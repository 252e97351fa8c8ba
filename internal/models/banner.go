package models

import (
	"time"

	"gorm.io/gorm"
)

type Banner struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:200" json:"title"`
	ImageURL  string         `gorm:"size:512;not null" json:"imageUrl"`
	LinkURL   string         `gorm:"size:512" json:"linkUrl"`
	SortOrder int            `gorm:"not null;default:0" json:"sortOrder"`
	Active    bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Banner) TableName() string { return "banners" }

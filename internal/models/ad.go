package models

import (
	"time"

	"gorm.io/gorm"
)

type Ad struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	MediaURL  string         `gorm:"size:512;not null" json:"mediaUrl"`
	Reward    float64        `gorm:"not null" json:"reward"`
	Duration  int            `gorm:"not null;default:30" json:"duration"` // seconds
	Active    bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Ad) TableName() string { return "ads" }

// AdView records one rewarded watch. The unique index keeps a user
// from being rewarded for the same ad twice on the same day.
type AdView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_ad_view_day" json:"userId"`
	AdID      uint      `gorm:"not null;index;uniqueIndex:idx_ad_view_day" json:"adId"`
	ViewDate  string    `gorm:"size:10;not null;uniqueIndex:idx_ad_view_day" json:"viewDate"` // YYYY-MM-DD
	Reward    float64   `gorm:"not null" json:"reward"`
	CreatedAt time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Ad   Ad   `gorm:"foreignKey:AdID" json:"-"`
}

func (AdView) TableName() string { return "ad_views" }

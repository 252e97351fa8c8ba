package models

import (
	"time"

	"gorm.io/gorm"
)

// Referral records the one-time signup conversion between a referrer
// and a referred user. Each user can be referred at most once.
type Referral struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ReferrerID uint           `gorm:"not null;index" json:"referrerId"`
	ReferredID uint           `gorm:"uniqueIndex;not null" json:"referredId"`
	Bonus      float64        `gorm:"not null;default:0" json:"bonus"`
	Rewarded   bool           `gorm:"not null;default:false" json:"rewarded"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Referrer User `gorm:"foreignKey:ReferrerID" json:"referrer,omitempty"`
	Referred User `gorm:"foreignKey:ReferredID" json:"referred,omitempty"`
}

func (Referral) TableName() string { return "referrals" }

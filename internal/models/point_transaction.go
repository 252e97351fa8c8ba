package models

import (
	"fmt"
	"time"
)

// PointTransaction is the append-only audit trail for balance
// mutations. RefKey carries the typed idempotency key for one-time
// events (e.g. "club:17", "user:42"); the composite unique index on
// (user_id, type, ref_key) is the enforcement mechanism, the
// application-level existence check only makes the skip silent.
// RefKey stays nil for repeatable types so they never collide.
type PointTransaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_point_tx_event" json:"userId"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Type      string    `gorm:"size:30;not null;index;uniqueIndex:idx_point_tx_event" json:"type"`
	RefKey    *string   `gorm:"size:64;uniqueIndex:idx_point_tx_event" json:"refKey"`
	Note      string    `gorm:"size:255" json:"note"`
	CreatedAt time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (PointTransaction) TableName() string { return "point_transactions" }

// ClubRef keys a one-time event to a club.
func ClubRef(clubID uint) *string {
	s := fmt.Sprintf("club:%d", clubID)
	return &s
}

// UserRef keys a one-time event to a user (e.g. a signup).
func UserRef(userID uint) *string {
	s := fmt.Sprintf("user:%d", userID)
	return &s
}

// WithdrawRef keys a settlement entry to a withdrawal order.
func WithdrawRef(orderID string) *string {
	s := "withdraw:" + orderID
	return &s
}

// AdRef keys an ad reward to one ad on one day.
func AdRef(adID uint, day string) *string {
	s := fmt.Sprintf("ad:%d:%s", adID, day)
	return &s
}

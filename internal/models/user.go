package models

import (
	"time"

	"adclub/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	SerialNumber uint   `gorm:"uniqueIndex;not null" json:"serialNumber"` // dense, assigned at registration
	Name         string `gorm:"size:100;not null" json:"name"`
	Phone        string `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	Email        string `gorm:"size:255" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Role         string `gorm:"size:10;not null;index;default:'user'" json:"role"` // user | admin | shoper

	ReferralCode string `gorm:"uniqueIndex;size:20;not null" json:"referralCode"`
	ReferredByID *uint  `gorm:"index" json:"referredById"`

	// Balance fields. Mutated only through ledger transactions, always
	// as relative deltas.
	TotalBalance     float64 `gorm:"not null;default:0" json:"totalBalance"`
	Deposit          float64 `gorm:"not null;default:0" json:"deposit"` // unconverted, pending club purchase
	TotalEarnings    float64 `gorm:"not null;default:0" json:"totalEarnings"`
	TotalDeposits    float64 `gorm:"not null;default:0" json:"totalDeposits"`
	TotalWithdrawals float64 `gorm:"not null;default:0" json:"totalWithdrawals"`
	PendingAmount    float64 `gorm:"not null;default:0" json:"pendingAmount"`

	// Income accumulators.
	ClubsIncome    float64 `gorm:"not null;default:0" json:"clubsIncome"`
	ClubsBonus     float64 `gorm:"not null;default:0" json:"clubsBonus"`
	TeamIncome     float64 `gorm:"not null;default:0" json:"teamIncome"`
	RoyaltyIncome  float64 `gorm:"not null;default:0" json:"royaltyIncome"`
	RefBonusEarned float64 `gorm:"not null;default:0" json:"refBonusEarned"`

	CachedClubsCount int        `gorm:"not null;default:0" json:"cachedClubsCount"` // denormalized, capped at 50
	BadgeLevel       string     `gorm:"size:10;not null;default:'NONE'" json:"badgeLevel"`
	LastIncomeUpdate *time.Time `json:"lastIncomeUpdate"` // passive income checkpoint

	PackageID *uint `gorm:"index" json:"packageId"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferredBy *User    `gorm:"foreignKey:ReferredByID" json:"-"`
	Package    *Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`
}

func (u *User) IsAdmin() bool  { return u.Role == domain.RoleAdmin }
func (u *User) IsShoper() bool { return u.Role == domain.RoleShoper }

// CanTransfer reports whether the user may send peer transfers.
func (u *User) CanTransfer() bool {
	return u.Role == domain.RoleAdmin || u.Role == domain.RoleShoper
}

package service

import (
	"adclub/internal/domain"
	"adclub/internal/models"

	"gorm.io/gorm"
)

// BadgeService recomputes badge tiers from referral-network stats.
type BadgeService struct {
	db *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{db: db}
}

// BadgeFor is the tier step function: at least 4 direct referrals, then
// tiered on the combined club count of those referrals. PLATINUM is
// admin-assigned only and never produced here.
func BadgeFor(referralCount, referralClubsDone int64) string {
	if referralCount < 4 {
		return domain.BadgeNone
	}
	switch {
	case referralClubsDone >= 400:
		return domain.BadgeDiamond
	case referralClubsDone >= 200:
		return domain.BadgeGolden
	case referralClubsDone >= 50:
		return domain.BadgeSilver
	}
	return domain.BadgeNone
}

// Evaluate recomputes badges for the given users in one transaction.
func (s *BadgeService) Evaluate(userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return EvaluateBadges(tx, userIDs)
	})
}

// EvaluateBadges is the tx-scoped evaluator used inside ledger
// transactions after referral-affecting events.
func EvaluateBadges(tx *gorm.DB, userIDs []uint) error {
	for _, id := range userIDs {
		var u models.User
		if err := tx.Select("id", "badge_level").First(&u, id).Error; err != nil {
			return err
		}
		if u.BadgeLevel == domain.BadgePlatinum {
			continue // assigned manually, not recomputed
		}
		var refCount int64
		err := tx.Model(&models.User{}).Where("referred_by_id = ?", id).Count(&refCount).Error
		if err != nil {
			return err
		}
		var clubsDone int64
		err = tx.Model(&models.Club{}).
			Where("owner_id IN (?)", tx.Model(&models.User{}).Select("id").Where("referred_by_id = ?", id)).
			Count(&clubsDone).Error
		if err != nil {
			return err
		}
		badge := BadgeFor(refCount, clubsDone)
		if badge == u.BadgeLevel {
			continue
		}
		err = tx.Model(&models.User{}).Where("id = ?", id).
			Update("badge_level", badge).Error
		if err != nil {
			return err
		}
	}
	return nil
}

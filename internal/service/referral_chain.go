package service

import (
	"errors"

	"adclub/internal/domain"
	"adclub/internal/models"

	"gorm.io/gorm"
)

// ResolveChain walks referredBy parent links from start, collecting
// ancestor ids closest-first, truncated at the first missing parent or
// at domain.ReferralMaxDepth.
func ResolveChain(tx *gorm.DB, start *uint) ([]uint, error) {
	ids := make([]uint, 0, domain.ReferralMaxDepth)
	next := start
	for depth := 0; depth < domain.ReferralMaxDepth && next != nil; depth++ {
		var u models.User
		err := tx.Select("id", "referred_by_id").First(&u, *next).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return nil, err
		}
		ids = append(ids, u.ID)
		next = u.ReferredByID
	}
	return ids, nil
}

// DistributeReferralBonus pays the level table to each ancestor exactly
// once per event. The event identity is (ancestor, txType, refKey); an
// existing ledger entry for that triple means the level was already
// paid and is skipped silently. Must run inside the caller's
// transaction so the check and the insert commit together.
func DistributeReferralBonus(tx *gorm.DB, ancestors []uint, txType string, refKey *string, note string) error {
	for level, ancestorID := range ancestors {
		if level >= len(domain.ReferralLevelBonus) {
			break
		}
		amount := domain.ReferralLevelBonus[level]
		var n int64
		err := tx.Model(&models.PointTransaction{}).
			Where("user_id = ? AND type = ? AND ref_key = ?", ancestorID, txType, *refKey).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n > 0 {
			continue // already paid for this event
		}
		entry := models.PointTransaction{
			UserID: ancestorID,
			Amount: amount,
			Type:   txType,
			RefKey: refKey,
			Note:   note,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		err = tx.Model(&models.User{}).Where("id = ?", ancestorID).
			Updates(map[string]interface{}{
				"total_balance": gorm.Expr("total_balance + ?", amount),
				"team_income":   gorm.Expr("team_income + ?", amount),
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

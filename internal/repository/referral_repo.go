package repository

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"adclub/internal/models"

	"gorm.io/gorm"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// GenerateCode returns an 8-character hex referral code.
func GenerateCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// UniqueCode generates a code not yet taken by any user, retrying on
// collision. It takes the db handle so registration can run it inside
// its own transaction.
func UniqueCode(db *gorm.DB) (string, error) {
	for i := 0; i < 10; i++ {
		code, err := GenerateCode()
		if err != nil {
			return "", err
		}
		var n int64
		if err := db.Model(&models.User{}).Where("referral_code = ?", code).Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique referral code after retries")
}

func (r *ReferralRepository) GetByReferredID(userID uint) (*models.Referral, error) {
	var ref models.Referral
	if err := r.db.Where("referred_id = ?", userID).First(&ref).Error; err != nil {
		return nil, err
	}
	return &ref, nil
}

// ListByReferrerID returns all referrals created by the given referrer,
// with the referred user preloaded.
func (r *ReferralRepository) ListByReferrerID(referrerID uint, limit, offset int) ([]models.Referral, error) {
	var list []models.Referral
	err := r.db.Where("referrer_id = ?", referrerID).
		Preload("Referred").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

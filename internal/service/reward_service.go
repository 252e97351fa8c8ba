package service

import (
	"errors"
	"fmt"
	"time"

	"adclub/internal/domain"
	"adclub/internal/models"

	"gorm.io/gorm"
)

const defaultDailyAdLimit = 5

// RewardService handles the two deposit-producing surfaces: rewarded
// ad watches and package purchases. The ledger trusts the amounts they
// hand over beyond positivity.
type RewardService struct {
	db      *gorm.DB
	clubSvc *ClubService
}

func NewRewardService(db *gorm.DB, clubSvc *ClubService) *RewardService {
	return &RewardService{db: db, clubSvc: clubSvc}
}

// WatchAd credits the ad's reward once per user, ad and calendar day,
// bounded by the user's package daily limit. The unique index on
// ad_views backs the existence check.
func (s *RewardService) WatchAd(userID, adID uint) (*models.AdView, error) {
	if userID == 0 || adID == 0 {
		return nil, domain.NewValidationError("user id and ad id required")
	}
	var view *models.AdView
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ad models.Ad
		if err := tx.Where("active = ?", true).First(&ad, adID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("ad not found")
			}
			return err
		}
		var u models.User
		if err := tx.Preload("Package").First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("user not found")
			}
			return err
		}
		limit := defaultDailyAdLimit
		if u.Package != nil && u.Package.DailyAdLimit > 0 {
			limit = u.Package.DailyAdLimit
		}
		today := time.Now().Format("2006-01-02")
		var watchedToday int64
		err := tx.Model(&models.AdView{}).
			Where("user_id = ? AND view_date = ?", userID, today).
			Count(&watchedToday).Error
		if err != nil {
			return err
		}
		if watchedToday >= int64(limit) {
			return domain.NewBusinessError("daily ad limit reached")
		}
		var dup int64
		err = tx.Model(&models.AdView{}).
			Where("user_id = ? AND ad_id = ? AND view_date = ?", userID, adID, today).
			Count(&dup).Error
		if err != nil {
			return err
		}
		if dup > 0 {
			return domain.NewBusinessError("ad already watched today")
		}
		view = &models.AdView{
			UserID:   userID,
			AdID:     adID,
			ViewDate: today,
			Reward:   ad.Reward,
		}
		if err := tx.Create(view).Error; err != nil {
			return err
		}
		entry := models.PointTransaction{
			UserID: userID,
			Amount: ad.Reward,
			Type:   domain.TxManual,
			RefKey: models.AdRef(adID, today),
			Note:   fmt.Sprintf("ad watch reward: %s", ad.Title),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"total_balance":  gorm.Expr("total_balance + ?", ad.Reward),
				"total_earnings": gorm.Expr("total_earnings + ?", ad.Reward),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// PurchasePackage attaches the package to the user and hands its price
// to the club allocator as a deposit. Payment collection happens
// outside this service; the price is trusted once the package exists.
func (s *RewardService) PurchasePackage(userID, packageID uint) (*AllocationResult, error) {
	if userID == 0 || packageID == 0 {
		return nil, domain.NewValidationError("user id and package id required")
	}
	var alloc *AllocationResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var p models.Package
		if err := tx.Where("active = ?", true).First(&p, packageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("package not found")
			}
			return err
		}
		err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("package_id", p.ID).Error
		if err != nil {
			return err
		}
		alloc, err = s.clubSvc.AllocateTx(tx, userID, p.Price)
		return err
	})
	if err != nil {
		return nil, err
	}
	return alloc, nil
}

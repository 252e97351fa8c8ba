package service

import (
	"errors"
	"fmt"
	"log"

	"adclub/internal/domain"
	"adclub/internal/models"

	"gorm.io/gorm"
)

// ClubService converts deposited earnings into clubs and drives the
// bonus series and referral payouts each new club triggers.
type ClubService struct {
	db *gorm.DB
}

func NewClubService(db *gorm.DB) *ClubService {
	return &ClubService{db: db}
}

// AllocationResult reports what one allocation round did.
type AllocationResult struct {
	ClubsCreated int     `json:"clubsCreated"`
	DepositLeft  float64 `json:"depositLeft"`
	BonusPaid    float64 `json:"bonusPaid"`
	LimitReached bool    `json:"limitReached"`
}

// Allocate banks a deposit for the user and converts as much of the
// accumulated deposit as possible into clubs. Runs as one transaction:
// the spend entry, the club rows, the bonus series and the referral
// payouts commit together or not at all. Callers must ensure
// at-most-once invocation per economic deposit; re-running with zero
// new deposit is a no-op.
func (s *ClubService) Allocate(userID uint, amount float64) (*AllocationResult, error) {
	if userID == 0 {
		return nil, domain.NewValidationError("user id required")
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("amount must be positive")
	}
	var res *AllocationResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = s.AllocateTx(tx, userID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// AllocateTx is the tx-scoped allocator, also used when a transfer
// routes its amount through club allocation inside the sender's
// settlement transaction.
func (s *ClubService) AllocateTx(tx *gorm.DB, userID uint, amount float64) (*AllocationResult, error) {
	spend := models.PointTransaction{
		UserID: userID,
		Amount: amount,
		Type:   domain.TxClubCreationSpend,
		Note:   "deposit banked for club purchase",
	}
	if err := tx.Create(&spend).Error; err != nil {
		return nil, err
	}
	err := tx.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"deposit":        gorm.Expr("deposit + ?", amount),
			"total_deposits": gorm.Expr("total_deposits + ?", amount),
		}).Error
	if err != nil {
		return nil, err
	}

	var u models.User
	if err := tx.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user not found")
		}
		return nil, err
	}

	res := &AllocationResult{DepositLeft: u.Deposit}
	remaining := domain.MaxClubsPerUser - u.CachedClubsCount
	if remaining <= 0 {
		res.LimitReached = true
		return res, nil // banked deposit stands, no clubs this round
	}
	toCreate := int(u.Deposit / domain.ClubCost)
	if toCreate > remaining {
		toCreate = remaining
	}
	if toCreate <= 0 {
		return res, nil // deposit below club cost, stays banked
	}

	var maxSerial uint64
	err = tx.Model(&models.Club{}).
		Select("COALESCE(MAX(serial_number), 0)").
		Scan(&maxSerial).Error
	if err != nil {
		return nil, err
	}
	clubs := make([]models.Club, toCreate)
	for i := range clubs {
		clubs[i] = models.Club{
			OwnerID:      userID,
			SerialNumber: maxSerial + uint64(i) + 1,
			Source:       "AUTO",
		}
	}
	if err := tx.Create(&clubs).Error; err != nil {
		return nil, err
	}
	spent := domain.ClubCost * float64(toCreate)
	err = tx.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"deposit":            gorm.Expr("deposit - ?", spent),
			"cached_clubs_count": gorm.Expr("cached_clubs_count + ?", toCreate),
		}).Error
	if err != nil {
		return nil, err
	}

	var totalClubs int64
	if err := tx.Model(&models.Club{}).Count(&totalClubs).Error; err != nil {
		return nil, err
	}
	ancestors, err := ResolveChain(tx, u.ReferredByID)
	if err != nil {
		return nil, err
	}

	bonusTotal := 0.0
	for i := range clubs {
		paid, err := realizeBonusSteps(tx, &clubs[i], totalClubs)
		if err != nil {
			return nil, err
		}
		bonusTotal += paid
		if len(ancestors) > 0 {
			note := fmt.Sprintf("club income from club #%d", clubs[i].SerialNumber)
			err = DistributeReferralBonus(tx, ancestors, domain.TxReferralClubIncome, models.ClubRef(clubs[i].ID), note)
			if err != nil {
				return nil, err
			}
		}
	}
	if bonusTotal > 0 {
		if err := creditClubBonus(tx, userID, bonusTotal); err != nil {
			return nil, err
		}
	}
	if len(ancestors) > 0 {
		if err := EvaluateBadges(tx, ancestors); err != nil {
			return nil, err
		}
	}

	res.ClubsCreated = toCreate
	res.DepositLeft = u.Deposit - spent
	res.BonusPaid = bonusTotal
	return res, nil
}

// realizeBonusSteps creates the ClubsBonus rows a club newly qualifies
// for against the given global population, returning the summed payout.
// Already-realized steps are counted and never re-created, so running
// this twice against the same population pays nothing the second time.
func realizeBonusSteps(tx *gorm.DB, club *models.Club, totalClubs int64) (float64, error) {
	var existing int64
	if err := tx.Model(&models.ClubsBonus{}).Where("club_id = ?", club.ID).Count(&existing).Error; err != nil {
		return 0, err
	}
	steps := QualifyingSteps(club.SerialNumber, totalClubs, int(existing))
	if len(steps) == 0 {
		return 0, nil
	}
	rows := make([]models.ClubsBonus, 0, len(steps))
	paid := 0.0
	for _, step := range steps {
		amt := BonusAmount(step)
		rows = append(rows, models.ClubsBonus{
			ClubID: club.ID,
			UserID: club.OwnerID,
			Amount: amt,
			Status: "Complete",
		})
		paid += amt
	}
	if err := tx.Create(&rows).Error; err != nil {
		return 0, err
	}
	return paid, nil
}

// creditClubBonus applies a realized bonus sum to the owner in one
// update and records the ledger entry.
func creditClubBonus(tx *gorm.DB, userID uint, amount float64) error {
	entry := models.PointTransaction{
		UserID: userID,
		Amount: amount,
		Type:   domain.TxClubBonus,
		Note:   "club series bonus",
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}
	return tx.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"clubs_bonus":   gorm.Expr("clubs_bonus + ?", amount),
			"total_balance": gorm.Expr("total_balance + ?", amount),
		}).Error
}

// BackfillBonuses re-evaluates every club that has unrealized steps
// against the current global population and pays newly qualified steps.
// Invoked from the periodic job endpoint; club creation itself only
// evaluates the clubs it just created.
func (s *ClubService) BackfillBonuses() (int, error) {
	var totalClubs int64
	if err := s.db.Model(&models.Club{}).Count(&totalClubs).Error; err != nil {
		return 0, err
	}
	var clubs []models.Club
	if err := s.db.Order("serial_number ASC").Find(&clubs).Error; err != nil {
		return 0, err
	}
	realized := 0
	for i := range clubs {
		club := clubs[i]
		err := s.db.Transaction(func(tx *gorm.DB) error {
			paid, err := realizeBonusSteps(tx, &club, totalClubs)
			if err != nil {
				return err
			}
			if paid > 0 {
				realized++
				return creditClubBonus(tx, club.OwnerID, paid)
			}
			return nil
		})
		if err != nil {
			log.Printf("[ledger] bonus backfill club %d: %v", club.ID, err)
			return realized, err
		}
	}
	return realized, nil
}

package service

import (
	"errors"
	"log"
	"time"

	"adclub/internal/domain"
	"adclub/internal/models"

	"gorm.io/gorm"
)

// IncomeService accrues time-based passive income (club income plus
// badge royalty). Accrual is lazy: profile reads call AccrueIfDue, and
// a periodic job calls AccrueAll with the same formula.
type IncomeService struct {
	db *gorm.DB
}

func NewIncomeService(db *gorm.DB) *IncomeService {
	return &IncomeService{db: db}
}

// AccrualResult carries the persisted gains and the live, never
// persisted sub-day projection the UI renders between checkpoints.
type AccrualResult struct {
	DaysPassed       int64   `json:"daysPassed"`
	DiffSeconds      int64   `json:"diffSeconds"`
	ClubGain         float64 `json:"clubGain"`
	RoyaltyGain      float64 `json:"royaltyGain"`
	PerSecondIncome  float64 `json:"perSecondIncome"`
	LiveIncrement    float64 `json:"liveIncrement"`
	LiveTotalBalance float64 `json:"liveTotalBalance"`
	LiveClubsIncome  float64 `json:"liveClubsIncome"`
}

// ComputeAccrual is the pure half: given the user's checkpoint state
// and a clock reading, it derives what a full-day accrual would persist
// and what the live projection shows. It touches no storage.
func ComputeAccrual(u *models.User, now time.Time) AccrualResult {
	last := u.CreatedAt
	if u.LastIncomeUpdate != nil {
		last = *u.LastIncomeUpdate
	}
	diff := int64(now.Sub(last).Seconds())
	if diff < 0 {
		diff = 0 // checkpoint is monotonic, never accrue backwards
	}
	days := diff / domain.SecondsPerDay
	daily := float64(u.CachedClubsCount) * domain.DailyClubIncomeRate

	res := AccrualResult{DiffSeconds: diff, DaysPassed: days}
	if days >= 1 {
		res.ClubGain = daily * float64(days)
		res.RoyaltyGain = domain.RoyaltyTable[u.BadgeLevel] * domain.RoyaltyDailyFactor * float64(days)
	}
	res.PerSecondIncome = daily / domain.SecondsPerDay
	// Whole days are persisted; the projection covers only the sub-day
	// remainder so a persisting read never reports the same gain twice.
	res.LiveIncrement = float64(diff%domain.SecondsPerDay) * res.PerSecondIncome
	return res
}

// AccrueIfDue persists any full elapsed days of income and advances the
// checkpoint, then returns the refreshed user plus live projections.
// Reads within the same day only move the projection, never the stored
// balance, so repeated reads cannot double-credit.
func (s *IncomeService) AccrueIfDue(userID uint) (*models.User, AccrualResult, error) {
	var u models.User
	if err := s.db.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, AccrualResult{}, domain.NewNotFoundError("user not found")
		}
		return nil, AccrualResult{}, err
	}
	now := time.Now()
	res := ComputeAccrual(&u, now)
	if res.DaysPassed >= 1 {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			return persistAccrual(tx, &u, now, &res)
		})
		if err != nil {
			return nil, AccrualResult{}, err
		}
		if err := s.db.First(&u, userID).Error; err != nil {
			return nil, AccrualResult{}, err
		}
	}
	res.LiveTotalBalance = u.TotalBalance + res.LiveIncrement
	res.LiveClubsIncome = u.ClubsIncome + res.LiveIncrement
	return &u, res, nil
}

// persistAccrual writes one accrual checkpoint: balance deltas plus the
// royalty ledger entry, and moves lastIncomeUpdate forward.
func persistAccrual(tx *gorm.DB, u *models.User, now time.Time, res *AccrualResult) error {
	gain := res.ClubGain + res.RoyaltyGain
	err := tx.Model(&models.User{}).Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"total_balance":      gorm.Expr("total_balance + ?", gain),
			"clubs_income":       gorm.Expr("clubs_income + ?", res.ClubGain),
			"royalty_income":     gorm.Expr("royalty_income + ?", res.RoyaltyGain),
			"total_earnings":     gorm.Expr("total_earnings + ?", gain),
			"last_income_update": now,
		}).Error
	if err != nil {
		return err
	}
	if res.RoyaltyGain > 0 {
		entry := models.PointTransaction{
			UserID: u.ID,
			Amount: res.RoyaltyGain,
			Type:   domain.TxRoyaltyDaily,
			Note:   "badge royalty accrual",
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

// AccrueAll is the bulk variant the external cron hits. It runs the
// same formula as the lazy path, one user per transaction, and returns
// how many users had a checkpoint persisted.
func (s *IncomeService) AccrueAll() (int, error) {
	var users []models.User
	err := s.db.
		Where("cached_clubs_count > 0 OR badge_level <> ?", domain.BadgeNone).
		Find(&users).Error
	if err != nil {
		return 0, err
	}
	accrued := 0
	now := time.Now()
	for i := range users {
		u := users[i]
		res := ComputeAccrual(&u, now)
		if res.DaysPassed < 1 {
			continue
		}
		err := s.db.Transaction(func(tx *gorm.DB) error {
			return persistAccrual(tx, &u, now, &res)
		})
		if err != nil {
			log.Printf("[ledger] bulk accrual user %d: %v", u.ID, err)
			continue
		}
		accrued++
	}
	return accrued, nil
}

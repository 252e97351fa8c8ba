package service

import (
	"errors"
	"math"

	"adclub/internal/domain"
	"adclub/internal/repository"

	"gorm.io/gorm"
)

// ReconcileService cross-checks the denormalized user balance fields
// against the point-transaction log and the club table. The log is the
// source of truth; the user fields are a transactionally-updated cache,
// so any drift points at a write that bypassed the ledger.
type ReconcileService struct {
	users  *repository.UserRepository
	points *repository.PointRepository
	clubs  *repository.ClubRepository
}

func NewReconcileService(
	users *repository.UserRepository,
	points *repository.PointRepository,
	clubs *repository.ClubRepository,
) *ReconcileService {
	return &ReconcileService{users: users, points: points, clubs: clubs}
}

// FieldCheck compares one stored field with its recomputed value.
type FieldCheck struct {
	Stored  float64 `json:"stored"`
	Derived float64 `json:"derived"`
	Drift   bool    `json:"drift"`
}

type ReconcileReport struct {
	UserID        uint       `json:"userId"`
	ClubsCount    FieldCheck `json:"clubsCount"`
	ClubsBonus    FieldCheck `json:"clubsBonus"`
	TeamIncome    FieldCheck `json:"teamIncome"`
	RoyaltyIncome FieldCheck `json:"royaltyIncome"`
	Clean         bool       `json:"clean"`
}

func fieldCheck(stored, derived float64) FieldCheck {
	return FieldCheck{
		Stored:  stored,
		Derived: derived,
		Drift:   math.Abs(stored-derived) > 1e-6,
	}
}

// ReconcileUser recomputes one user's accumulators from the ledger and
// reports per-field drift.
func (s *ReconcileService) ReconcileUser(userID uint) (*ReconcileReport, error) {
	u, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user not found")
		}
		return nil, err
	}
	clubCount, err := s.clubs.CountByOwner(userID)
	if err != nil {
		return nil, err
	}
	clubsBonus, err := s.points.SumByUserAndType(userID, domain.TxClubBonus)
	if err != nil {
		return nil, err
	}
	teamIncome := 0.0
	for _, txType := range []string{
		domain.TxReferralSignupBonus,
		domain.TxReferralClubIncome,
		domain.TxReferralTeamIncome,
	} {
		sum, err := s.points.SumByUserAndType(userID, txType)
		if err != nil {
			return nil, err
		}
		teamIncome += sum
	}
	royalty, err := s.points.SumByUserAndType(userID, domain.TxRoyaltyDaily)
	if err != nil {
		return nil, err
	}

	rep := &ReconcileReport{
		UserID:        u.ID,
		ClubsCount:    fieldCheck(float64(u.CachedClubsCount), float64(clubCount)),
		ClubsBonus:    fieldCheck(u.ClubsBonus, clubsBonus),
		TeamIncome:    fieldCheck(u.TeamIncome, teamIncome),
		RoyaltyIncome: fieldCheck(u.RoyaltyIncome, royalty),
	}
	rep.Clean = !rep.ClubsCount.Drift && !rep.ClubsBonus.Drift &&
		!rep.TeamIncome.Drift && !rep.RoyaltyIncome.Drift
	return rep, nil
}

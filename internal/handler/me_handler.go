package handler

import (
	"net/http"
	"strconv"

	"adclub/internal/middleware"
	"adclub/internal/models"
	"adclub/internal/repository"
	"adclub/internal/service"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	userRepo     *repository.UserRepository
	clubRepo     *repository.ClubRepository
	pointRepo    *repository.PointRepository
	referralRepo *repository.ReferralRepository
	incomeSvc    *service.IncomeService
}

func NewMeHandler(
	userRepo *repository.UserRepository,
	clubRepo *repository.ClubRepository,
	pointRepo *repository.PointRepository,
	referralRepo *repository.ReferralRepository,
	incomeSvc *service.IncomeService,
) *MeHandler {
	return &MeHandler{
		userRepo:     userRepo,
		clubRepo:     clubRepo,
		pointRepo:    pointRepo,
		referralRepo: referralRepo,
		incomeSvc:    incomeSvc,
	}
}

// GetProfile accrues any due passive income, then returns the user with
// the live sub-day projection so balances tick upward between reads
// without a write per request.
func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, accrual, err := h.incomeSvc.AccrueIfDue(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":               u,
		"live_total_balance": accrual.LiveTotalBalance,
		"live_clubs_income":  accrual.LiveClubsIncome,
		"per_second_income":  accrual.PerSecondIncome,
		"diff_seconds":       accrual.DiffSeconds,
	})
}

func (h *MeHandler) GetClubs(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	clubs, err := h.clubRepo.ListByOwner(userID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clubs": clubs})
}

func (h *MeHandler) GetClubBonuses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	bonuses, err := h.clubRepo.ListBonusesByUser(userID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bonuses": bonuses})
}

// GetClubBonusHistory lists the realized bonus steps of one of the
// caller's clubs.
func (h *MeHandler) GetClubBonusHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	clubID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}
	bonuses, err := h.clubRepo.ListBonuses(uint(clubID), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bonuses": bonuses})
}

func (h *MeHandler) GetTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	if txType := c.Query("type"); txType != "" {
		list, err := h.pointRepo.ListByUserAndType(userID, txType, limit, offset)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": list})
		return
	}
	list, err := h.pointRepo.ListByUser(userID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": list})
}

func (h *MeHandler) GetReferrals(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	list, err := h.referralRepo.ListByReferrerID(userID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	count, err := h.userRepo.CountDirectReferrals(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	// the caller's own upline record, nil when they joined without a code
	var upline *models.Referral
	if ref, err := h.referralRepo.GetByReferredID(userID); err == nil {
		upline = ref
	}
	c.JSON(http.StatusOK, gin.H{"referrals": list, "direct_count": count, "referred_by": upline})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

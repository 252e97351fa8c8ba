package handler

import (
	"net/http"
	"strconv"

	"adclub/internal/domain"
	"adclub/internal/middleware"
	"adclub/internal/models"
	"adclub/internal/repository"
	"adclub/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	userRepo       *repository.UserRepository
	clubRepo       *repository.ClubRepository
	withdrawalRepo *repository.WithdrawalRepository
	catalogRepo    *repository.CatalogRepository
	settlementSvc  *service.SettlementService
	incomeSvc      *service.IncomeService
	clubSvc        *service.ClubService
	reconcileSvc   *service.ReconcileService
}

func NewAdminHandler(
	userRepo *repository.UserRepository,
	clubRepo *repository.ClubRepository,
	withdrawalRepo *repository.WithdrawalRepository,
	catalogRepo *repository.CatalogRepository,
	settlementSvc *service.SettlementService,
	incomeSvc *service.IncomeService,
	clubSvc *service.ClubService,
	reconcileSvc *service.ReconcileService,
) *AdminHandler {
	return &AdminHandler{
		userRepo:       userRepo,
		clubRepo:       clubRepo,
		withdrawalRepo: withdrawalRepo,
		catalogRepo:    catalogRepo,
		settlementSvc:  settlementSvc,
		incomeSvc:      incomeSvc,
		clubSvc:        clubSvc,
		reconcileSvc:   reconcileSvc,
	}
}

// Stats reports the platform-wide counters the admin dashboard shows.
func (h *AdminHandler) Stats(c *gin.Context) {
	maxSerial, err := h.userRepo.MaxSerialNumber()
	if err != nil {
		writeError(c, err)
		return
	}
	totalClubs, err := h.clubRepo.CountAll()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"max_user_serial": maxSerial,
		"total_clubs":     totalClubs,
	})
}

// ReconcileUser cross-checks one user's denormalized balances against
// the ledger and reports per-field drift.
func (h *AdminHandler) ReconcileUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	report, err := h.reconcileSvc.ReconcileUser(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.userRepo.List(limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": list})
}

func (h *AdminHandler) ListWithdrawals(c *gin.Context) {
	limit, offset := pagination(c)
	status := c.DefaultQuery("status", domain.WithdrawStatusPending)
	list, err := h.withdrawalRepo.ListByStatus(status, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": list})
}

func (h *AdminHandler) GetWithdrawal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid withdrawal id"})
		return
	}
	w, err := h.withdrawalRepo.GetByID(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal": w})
}

func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid withdrawal id"})
		return
	}
	w, err := h.settlementSvc.ApproveWithdrawal(uint(id), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal": w})
}

func (h *AdminHandler) RejectWithdrawal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid withdrawal id"})
		return
	}
	w, err := h.settlementSvc.RejectWithdrawal(uint(id), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal": w})
}

func (h *AdminHandler) ManualCredit(c *gin.Context) {
	var req struct {
		UserID uint    `json:"user_id" binding:"required"`
		Amount float64 `json:"amount" binding:"required"`
		Note   string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Note == "" {
		req.Note = "manual adjustment"
	}
	if err := h.settlementSvc.ManualCredit(req.UserID, req.Amount, req.Note); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunAccrual is the cron entry point for bulk passive-income accrual.
// It uses the same formula as the lazy profile-read path.
func (h *AdminHandler) RunAccrual(c *gin.Context) {
	n, err := h.incomeSvc.AccrueAll()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accrued_users": n})
}

// RunBonusBackfill re-evaluates club bonus series against the current
// global population.
func (h *AdminHandler) RunBonusBackfill(c *gin.Context) {
	n, err := h.clubSvc.BackfillBonuses()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clubs_paid": n})
}

func (h *AdminHandler) SavePackage(c *gin.Context) {
	var p models.Package
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.catalogRepo.SavePackage(&p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": p})
}

func (h *AdminHandler) DeletePackage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}
	if err := h.catalogRepo.DeletePackage(uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminHandler) SaveAd(c *gin.Context) {
	var a models.Ad
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.catalogRepo.SaveAd(&a); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ad": a})
}

func (h *AdminHandler) DeleteAd(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ad id"})
		return
	}
	if err := h.catalogRepo.DeleteAd(uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminHandler) SaveBanner(c *gin.Context) {
	var b models.Banner
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.catalogRepo.SaveBanner(&b); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banner": b})
}

func (h *AdminHandler) DeleteBanner(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid banner id"})
		return
	}
	if err := h.catalogRepo.DeleteBanner(uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminHandler) SaveBankingService(c *gin.Context) {
	var s models.BankingService
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.catalogRepo.SaveBankingService(&s); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": s})
}

func (h *AdminHandler) DeleteBankingService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}
	if err := h.catalogRepo.DeleteBankingService(uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

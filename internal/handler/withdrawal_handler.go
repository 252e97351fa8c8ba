package handler

import (
	"net/http"

	"adclub/internal/middleware"
	"adclub/internal/repository"
	"adclub/internal/service"

	"github.com/gin-gonic/gin"
)

type WithdrawalHandler struct {
	withdrawalRepo *repository.WithdrawalRepository
	settlementSvc  *service.SettlementService
}

func NewWithdrawalHandler(withdrawalRepo *repository.WithdrawalRepository, settlementSvc *service.SettlementService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalRepo: withdrawalRepo, settlementSvc: settlementSvc}
}

// Create opens a withdrawal request. The caller is assumed to have
// passed any verification the platform requires before reaching here.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Amount        float64 `json:"amount" binding:"required,gt=0"`
		Method        string  `json:"method" binding:"required"`
		AccountNumber string  `json:"account_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := h.settlementSvc.RequestWithdrawal(userID, req.Amount, req.Method, req.AccountNumber)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"withdrawal": w})
}

// Get returns one of the caller's withdrawals by order id. Other
// users' orders read as not found.
func (h *WithdrawalHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	w, err := h.withdrawalRepo.GetByOrderID(c.Param("orderId"))
	if err != nil {
		writeError(c, err)
		return
	}
	if w.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal": w})
}

func (h *WithdrawalHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	list, err := h.withdrawalRepo.ListByUser(userID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": list})
}

package handler

import (
	"net/http"
	"strconv"

	"adclub/internal/middleware"
	"adclub/internal/repository"
	"adclub/internal/service"

	"github.com/gin-gonic/gin"
)

type TransferHandler struct {
	settlementSvc *service.SettlementService
	userRepo      *repository.UserRepository
}

func NewTransferHandler(settlementSvc *service.SettlementService, userRepo *repository.UserRepository) *TransferHandler {
	return &TransferHandler{settlementSvc: settlementSvc, userRepo: userRepo}
}

// Create sends balance to a user identified by serial number. Role
// enforcement (admin/shoper) happens inside the settlement service so
// the rule holds for every caller.
func (h *TransferHandler) Create(c *gin.Context) {
	senderID := middleware.GetUserID(c)
	var req struct {
		ReceiverSerial uint    `json:"receiver_serial" binding:"required"`
		Amount         float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.settlementSvc.Transfer(senderID, req.ReceiverSerial, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transfer": res})
}

// PreviewRecipient resolves a serial number to the account a transfer
// would land on, so the sender can confirm before committing funds.
func (h *TransferHandler) PreviewRecipient(c *gin.Context) {
	serial, err := strconv.ParseUint(c.Param("serial"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid serial number"})
		return
	}
	u, err := h.userRepo.GetBySerialNumber(uint(serial))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipient": gin.H{
		"serial_number": u.SerialNumber,
		"name":          u.Name,
		"role":          u.Role,
		"clubs_count":   u.CachedClubsCount,
	}})
}

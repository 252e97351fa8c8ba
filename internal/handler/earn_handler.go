package handler

import (
	"net/http"
	"strconv"

	"adclub/internal/middleware"
	"adclub/internal/repository"
	"adclub/internal/service"

	"github.com/gin-gonic/gin"
)

// EarnHandler exposes the deposit-producing surfaces: package purchase
// and rewarded ad watches.
type EarnHandler struct {
	catalogRepo *repository.CatalogRepository
	rewardSvc   *service.RewardService
}

func NewEarnHandler(catalogRepo *repository.CatalogRepository, rewardSvc *service.RewardService) *EarnHandler {
	return &EarnHandler{catalogRepo: catalogRepo, rewardSvc: rewardSvc}
}

func (h *EarnHandler) ListPackages(c *gin.Context) {
	list, err := h.catalogRepo.ListPackages(true)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": list})
}

func (h *EarnHandler) GetPackage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}
	p, err := h.catalogRepo.GetPackage(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": p})
}

func (h *EarnHandler) PurchasePackage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	packageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}
	alloc, err := h.rewardSvc.PurchasePackage(userID, uint(packageID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"allocation": alloc})
}

func (h *EarnHandler) ListAds(c *gin.Context) {
	list, err := h.catalogRepo.ListAds(true)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ads": list})
}

func (h *EarnHandler) GetAd(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ad id"})
		return
	}
	ad, err := h.catalogRepo.GetAd(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ad": ad})
}

func (h *EarnHandler) WatchAd(c *gin.Context) {
	userID := middleware.GetUserID(c)
	adID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ad id"})
		return
	}
	view, err := h.rewardSvc.WatchAd(userID, uint(adID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"view": view, "reward": view.Reward})
}

package handler

import (
	"net/http"

	"adclub/internal/repository"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public read-only catalog records.
type CatalogHandler struct {
	catalogRepo *repository.CatalogRepository
}

func NewCatalogHandler(catalogRepo *repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalogRepo: catalogRepo}
}

func (h *CatalogHandler) ListBanners(c *gin.Context) {
	list, err := h.catalogRepo.ListBanners(true)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": list})
}

func (h *CatalogHandler) ListBankingServices(c *gin.Context) {
	list, err := h.catalogRepo.ListBankingServices(true)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": list})
}

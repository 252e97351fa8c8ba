package handler

import (
	"errors"
	"net/http"

	"adclub/internal/domain"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// writeError maps typed domain errors to their status class, raw
// record-not-found to a 404, and hides everything else behind a 500.
func writeError(c *gin.Context, err error) {
	if de, ok := domain.AsError(err); ok {
		c.JSON(de.Status, gin.H{"error": de.Message})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

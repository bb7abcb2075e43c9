package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/phardev/apodata-backend/internal/service"
)

type SellinHandler struct {
	sellinService *service.SellinService
}

func NewSellinHandler(sellinService *service.SellinService) *SellinHandler {
	return &SellinHandler{sellinService: sellinService}
}

// GetSellinSummary computes the sell-in totals for the requested period
// and scope, with optional period-over-period comparison
func (h *SellinHandler) GetSellinSummary(c *gin.Context) {
	var req domain.SellinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	summary, err := h.sellinService.GetSummary(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to compute sellin summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// InvalidateCache drops every memoized sell-in summary
func (h *SellinHandler) InvalidateCache(c *gin.Context) {
	if err := h.sellinService.InvalidateCache(c.Request.Context()); err != nil {
		respondError(c, err, "failed to invalidate sellin cache")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}

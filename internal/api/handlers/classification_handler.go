package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/phardev/apodata-backend/internal/service"
)

type ClassificationHandler struct {
	classificationService *service.ClassificationService
}

func NewClassificationHandler(classificationService *service.ClassificationService) *ClassificationHandler {
	return &ClassificationHandler{classificationService: classificationService}
}

// GetProductMargins buckets in-scope products into the margin bands
func (h *ClassificationHandler) GetProductMargins(c *gin.Context) {
	h.classify(c, h.classificationService.GetMarginClassification, "failed to classify product margins")
}

// GetPriceComparison buckets in-scope products into the price-deviation bands
func (h *ClassificationHandler) GetPriceComparison(c *gin.Context) {
	h.classify(c, h.classificationService.GetPriceComparison, "failed to classify product prices")
}

// GetStockCoverage buckets in-scope products into the stock-coverage bands
func (h *ClassificationHandler) GetStockCoverage(c *gin.Context) {
	h.classify(c, h.classificationService.GetStockCoverage, "failed to classify stock coverage")
}

func (h *ClassificationHandler) classify(c *gin.Context, fn func(context.Context, domain.ClassificationRequest) ([]domain.BandGroup, error), message string) {
	var req domain.ClassificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	groups, err := fn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bands": groups})
}

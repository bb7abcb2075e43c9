package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phardev/apodata-backend/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetPharmacies returns every pharmacy for the filter sidebar
func (h *CatalogHandler) GetPharmacies(c *gin.Context) {
	pharmacies, err := h.catalogService.GetPharmacies(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch pharmacies")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pharmacies": pharmacies})
}

// GetProducts searches the product catalog by name or code prefix
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	limit := parsePositiveIntWithDefault(c.Query("limit"), 50)
	offset := parseNonNegativeInt(c.Query("offset"))

	products, err := h.catalogService.SearchProducts(c.Request.Context(), search, limit, offset)
	if err != nil {
		respondError(c, err, "failed to search products")
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetLaboratories returns the distinct laboratory names
func (h *CatalogHandler) GetLaboratories(c *gin.Context) {
	laboratories, err := h.catalogService.GetLaboratories(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch laboratories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"laboratories": laboratories})
}

// GetSegmentValues returns the distinct values of one segment dimension,
// e.g. /api/segments?type=universe
func (h *CatalogHandler) GetSegmentValues(c *gin.Context) {
	segmentType := c.DefaultQuery("type", "category")

	values, err := h.catalogService.GetSegmentValues(c.Request.Context(), segmentType)
	if err != nil {
		respondError(c, err, "failed to fetch segment values")
		return
	}

	c.JSON(http.StatusOK, gin.H{"type": segmentType, "values": values})
}

func parsePositiveIntWithDefault(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func parseNonNegativeInt(value string) int {
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v >= 0 {
		return v
	}
	return 0
}

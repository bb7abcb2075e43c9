package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/phardev/apodata-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// maxCodesForQueryTransport is the point past which clients must switch
// from query parameters to a request body: above it the code list risks
// blowing the URL length limit. The filter semantics are identical on
// both transports.
const maxCodesForQueryTransport = 20

type SegmentHandler struct {
	segmentService *service.SegmentService
}

func NewSegmentHandler(segmentService *service.SegmentService) *SegmentHandler {
	return &SegmentHandler{segmentService: segmentService}
}

// GetSegmentDistribution returns the sell-out distribution per segment
// value. Accepts the filter either as query parameters (GET) or as a JSON
// body (POST, required for large code lists).
func (h *SegmentHandler) GetSegmentDistribution(c *gin.Context) {
	var req domain.SegmentRequest
	if c.Request.Method == http.MethodGet {
		req = parseSegmentQuery(c)
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	distributions, err := h.segmentService.GetDistribution(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to compute segment distribution")
		return
	}
	if distributions == nil {
		distributions = []domain.SegmentDistributionItem{}
	}

	c.JSON(http.StatusOK, gin.H{"distributions": distributions})
}

// GetSegmentEvolution compares each segment value between two periods
func (h *SegmentHandler) GetSegmentEvolution(c *gin.Context) {
	var req domain.SegmentEvolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	data, err := h.segmentService.GetEvolution(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to compute segment evolution")
		return
	}
	if data == nil {
		data = []domain.SegmentEvolutionItem{}
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GetSellinBySegment returns the sell-in distribution per segment value
func (h *SegmentHandler) GetSellinBySegment(c *gin.Context) {
	var req domain.SegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	distributions, err := h.segmentService.GetPurchasesBySegment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to compute sellin by segment")
		return
	}
	if distributions == nil {
		distributions = []domain.SegmentPurchaseItem{}
	}

	c.JSON(http.StatusOK, gin.H{"distributions": distributions})
}

// GetStockBySegment returns the current stock position per segment value
func (h *SegmentHandler) GetStockBySegment(c *gin.Context) {
	var req domain.SegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	distributions, err := h.segmentService.GetStockBySegment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to compute stock by segment")
		return
	}
	if distributions == nil {
		distributions = []domain.SegmentStockItem{}
	}

	c.JSON(http.StatusOK, gin.H{"distributions": distributions})
}

func parseSegmentQuery(c *gin.Context) domain.SegmentRequest {
	req := domain.SegmentRequest{
		StartDate:   strings.TrimSpace(c.Query("startDate")),
		EndDate:     strings.TrimSpace(c.Query("endDate")),
		SegmentType: strings.TrimSpace(c.Query("segmentType")),
		PharmacyIDs: parseStringList(c, "pharmacyIds"),
		Code13Refs:  parseStringList(c, "code13refs"),
		FilterMode:  strings.TrimSpace(c.Query("filterMode")),
	}

	if len(req.Code13Refs) > maxCodesForQueryTransport {
		log.Warn().
			Int("codes", len(req.Code13Refs)).
			Msg("segment: large code list on query transport, clients should POST")
	}

	return req
}

// parseStringList supports both repeated params and comma-separated values:
//
//	?pharmacyIds=a&pharmacyIds=b
//	?pharmacyIds=a,b
func parseStringList(c *gin.Context, param string) []string {
	raw := c.QueryArray(param)
	if len(raw) == 0 {
		if single := strings.TrimSpace(c.Query(param)); single != "" {
			raw = strings.Split(single, ",")
		}
	}

	var values []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}
	return values
}

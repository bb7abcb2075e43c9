package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/phardev/apodata-backend/internal/api/handlers"
	"github.com/phardev/apodata-backend/internal/api/middleware"
	"github.com/phardev/apodata-backend/internal/service"
)

type Services struct {
	SellinService         *service.SellinService
	SegmentService        *service.SegmentService
	ClassificationService *service.ClassificationService
	CatalogService        *service.CatalogService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")

	if services != nil {
		if services.SellinService != nil {
			sellinHandler := handlers.NewSellinHandler(services.SellinService)
			apiGroup.POST("/sales/sellin", sellinHandler.GetSellinSummary)
			// used after reseeding so stale summaries never outlive an import
			apiGroup.POST("/cache/invalidate", sellinHandler.InvalidateCache)
		}

		if services.SegmentService != nil {
			segmentHandler := handlers.NewSegmentHandler(services.SegmentService)
			apiGroup.GET("/sales/segment-distribution", segmentHandler.GetSegmentDistribution)
			apiGroup.POST("/sales/segment-distribution", segmentHandler.GetSegmentDistribution)
			apiGroup.POST("/sales/segment-evolution", segmentHandler.GetSegmentEvolution)
			apiGroup.POST("/sellin/by-segment", segmentHandler.GetSellinBySegment)
			apiGroup.POST("/stock/by-segment", segmentHandler.GetStockBySegment)
		}

		if services.ClassificationService != nil {
			classificationHandler := handlers.NewClassificationHandler(services.ClassificationService)
			apiGroup.POST("/products/margins", classificationHandler.GetProductMargins)
			apiGroup.POST("/products/price-comparison", classificationHandler.GetPriceComparison)
			apiGroup.POST("/stock/coverage", classificationHandler.GetStockCoverage)
		}

		if services.CatalogService != nil {
			catalogHandler := handlers.NewCatalogHandler(services.CatalogService)
			apiGroup.GET("/pharmacies", catalogHandler.GetPharmacies)
			apiGroup.GET("/products", catalogHandler.GetProducts)
			apiGroup.GET("/laboratories", catalogHandler.GetLaboratories)
			apiGroup.GET("/segments", catalogHandler.GetSegmentValues)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}

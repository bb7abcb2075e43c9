package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phardev/apodata-backend/internal/api"
	"github.com/phardev/apodata-backend/internal/cache"
	"github.com/phardev/apodata-backend/internal/config"
	"github.com/phardev/apodata-backend/internal/repository/postgres"
	"github.com/phardev/apodata-backend/internal/service"
	"github.com/phardev/apodata-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
		logger.SetLevel("debug")
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger.SetLevel("info")
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	sellinCache, err := cache.NewSellinCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Redis unavailable, running without sell-in cache")
		sellinCache = cache.NewNoopSellinCache()
	}

	salesRepo := postgres.NewSalesRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)

	services := &api.Services{
		SellinService:         service.NewSellinService(salesRepo, catalogRepo, sellinCache),
		SegmentService:        service.NewSegmentService(salesRepo, catalogRepo),
		ClassificationService: service.NewClassificationService(salesRepo, catalogRepo),
		CatalogService:        service.NewCatalogService(catalogRepo),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

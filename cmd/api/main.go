package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"

	"hearing-care-backend/config"
	_ "hearing-care-backend/docs" // Important for Swagger
	v1 "hearing-care-backend/internal/delivery/http/v1"
	"hearing-care-backend/internal/domain"
	"hearing-care-backend/internal/gallery"
	"hearing-care-backend/internal/repository/cache"
	"hearing-care-backend/internal/usecase"
	"hearing-care-backend/pkg/email"
	"hearing-care-backend/pkg/i18n"
	"hearing-care-backend/pkg/logger"
	"hearing-care-backend/pkg/places"
	"hearing-care-backend/pkg/redis"
	"hearing-care-backend/pkg/security"
	"hearing-care-backend/pkg/validation"
)

// @title           Hearing Care Clinic API
// @version         1.0
// @description     Contact form mailer, Google reviews proxy and photo gallery for the clinic website.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init()
	production := gin.Mode() == gin.ReleaseMode
	env := "development"
	if production {
		env = "production"
	}
	secLogger := security.InitSecurityLogger("hearing-care-backend", env)
	defer func() { _ = secLogger.Sync() }()
	logger.Log.Info("Starting hearing care backend", "port", cfg.Port, "env", env)

	// 3. Setup i18n
	if err := i18n.Setup(cfg.DefaultLocale); err != nil {
		logger.Log.Error("Failed to load translations", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (optional)
	err = redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Info("Redis not configured - using in-memory rate limiting and review cache")
	case err != nil:
		logger.Log.Warn("Redis unavailable - using in-memory fallbacks", "error", err)
	}
	defer func() { _ = redis.Close() }()

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !cfg.MailConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable")
	}

	// 6. Setup Google Places client and review cache
	placesClient := places.NewClient(cfg)
	if !placesClient.IsConfigured() {
		logger.Log.Warn("Google Places not configured - reviews endpoint will ask the site to fall back")
	}

	var reviewCache domain.ReviewCache
	if cfg.ReviewsCacheTTL > 0 {
		if rc := redis.Client(); rc != nil {
			reviewCache = cache.NewRedisReviewCache(rc)
		} else {
			reviewCache = cache.NewMemoryReviewCache()
		}
	}

	// 7. Setup UseCases
	contactUC := usecase.NewContactUsecase(emailService, validation.Default(), cfg)
	reviewUC := usecase.NewReviewUsecase(placesClient, reviewCache, cfg.ReviewsCacheTTL,
		cfg.GooglePlaceID+":"+cfg.GooglePlacesLanguage)
	galleryUC := usecase.NewGalleryUsecase(gallery.Default())
	healthUC := usecase.NewHealthUsecase(cfg.MailConfigured(), placesClient.IsConfigured())

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:  contactUC,
		ReviewUC:   reviewUC,
		GalleryUC:  galleryUC,
		HealthUC:   healthUC,
		Config:     cfg,
		Production: production,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           gzhttp.GzipHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

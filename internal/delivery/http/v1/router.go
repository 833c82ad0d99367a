package v1

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"hearing-care-backend/config"
	"hearing-care-backend/internal/delivery/http/middleware"
	"hearing-care-backend/internal/domain"
	"hearing-care-backend/internal/usecase"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	ReviewUC  domain.ReviewUsecase
	GalleryUC domain.GalleryUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
	// Production enables HSTS and drops the localhost CORS origins.
	Production bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Production)) // CORS must be first!
	r.Use(middleware.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.Locale())
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	// Swagger
	api.GET("/swagger/*any", middleware.SwaggerHeadersMiddleware(), ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := api.Group("")
	public.Use(middleware.SecurityHeadersMiddleware(deps.Production))
	public.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config)))
	{
		NewHealthHandler(public, deps.HealthUC)
		NewContactHandler(public, deps.ContactUC, middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(deps.Config)))
		NewReviewsHandler(public, deps.ReviewUC)
		NewGalleryHandler(public, deps.GalleryUC)
	}

	return r
}

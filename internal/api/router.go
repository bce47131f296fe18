package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/listingkit/listingkit-backend/internal/config"
	"github.com/listingkit/listingkit-backend/internal/handler"
	"github.com/listingkit/listingkit-backend/internal/middleware"
	"github.com/listingkit/listingkit-backend/internal/service"
)

// Services bundles what the routes are served from
type Services struct {
	Places  *service.PlacesService
	Schools *service.SchoolService
	Auth    *service.AuthService
	Limiter *middleware.RateLimiter
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, svc Services, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())

	r.GET("/health", handler.Health)

	api := r.Group("/api")
	if svc.Limiter != nil {
		api.Use(middleware.RateLimit(svc.Limiter))
	}

	authHandler := handler.NewAuthHandler(svc.Auth)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/login", authHandler.Login)
	}

	data := api.Group("")
	if cfg.AuthRequired {
		data.Use(middleware.Auth(svc.Auth))
	}

	placesHandler := handler.NewPlacesHandler(svc.Places)
	places := data.Group("/places")
	{
		places.GET("", placesHandler.GetPlaces)
		places.GET("/photo", placesHandler.GetPhoto)
	}

	schoolHandler := handler.NewSchoolHandler(svc.Schools)
	data.GET("/schools", schoolHandler.GetSchools)

	return r
}

package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/infra/config"
	"github.com/binaryatrocity/beer-api/internal/transport/http/handlers"
	"github.com/binaryatrocity/beer-api/internal/transport/http/middleware"
	"github.com/binaryatrocity/beer-api/internal/usecase"
)

// BasePath is the mounted API prefix.
const BasePath = "/beer/api/v0.1"

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth         *usecase.AuthService
	Registration *usecase.RegistrationService
	Users        *usecase.UserService
	Beers        *usecase.BeerService
	Glasses      *usecase.GlassService
	Reviews      *usecase.ReviewService
	Favorites    *usecase.FavoriteService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.HTTPMetrics
	Services    ServiceSet
	Database    DatabaseChecker
	Cache       CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config != nil && deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	r.HandleMethodNotAllowed = true
	r.NoRoute(handlers.NotFound)
	r.NoMethod(handlers.MethodNotAllowed)

	authMiddleware := middleware.RequireAuth(deps.Services.Auth, deps.Logger)

	healthOptions := make([]handlers.HealthOption, 0, 2)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(BasePath)
	api.Use(middleware.RequireJSON())
	if limiter := buildAbuseLimiter(deps); limiter != nil {
		api.Use(limiter)
	}

	tokenHandler := handlers.NewTokenHandler(deps.Services.Auth, deps.Logger)
	api.GET("/token", authMiddleware, tokenHandler.Issue)

	userHandler := handlers.NewUserHandler(deps.Services.Registration, deps.Services.Users, BasePath, deps.Logger)
	api.POST("/users", userHandler.Create)
	api.GET("/users", userHandler.List)
	api.GET("/users/:id", authMiddleware, userHandler.Get)

	beerHandler := handlers.NewBeerHandler(deps.Services.Beers, deps.Services.Reviews, BasePath, deps.Logger)
	api.POST("/beers", authMiddleware, beerHandler.Create)
	api.GET("/beers", beerHandler.List)
	api.GET("/beers/:id", beerHandler.Get)
	api.GET("/beers/:id/reviews", beerHandler.ListReviews)

	glassHandler := handlers.NewGlassHandler(deps.Services.Glasses, BasePath, deps.Logger)
	api.POST("/glasses", authMiddleware, glassHandler.Create)
	api.GET("/glasses", glassHandler.List)
	api.GET("/glasses/:id", glassHandler.Get)
	api.DELETE("/glasses/:id", authMiddleware, glassHandler.Delete)

	reviewHandler := handlers.NewReviewHandler(deps.Services.Reviews, BasePath, deps.Logger)
	api.POST("/reviews", authMiddleware, reviewHandler.Create)
	api.GET("/reviews", reviewHandler.List)
	api.GET("/reviews/:id", reviewHandler.Get)

	favoriteHandler := handlers.NewFavoriteHandler(deps.Services.Favorites, deps.Logger)
	api.POST("/users/:id/favorites", authMiddleware, favoriteHandler.Replace)
	api.PUT("/users/:id/favorites", authMiddleware, favoriteHandler.Update)
	api.DELETE("/users/:id/favorites", authMiddleware, favoriteHandler.Clear)
	api.GET("/users/:id/favorites", authMiddleware, favoriteHandler.List)

	return r
}

func buildAbuseLimiter(deps Dependencies) gin.HandlerFunc {
	if deps.RateLimiter == nil || deps.Config == nil {
		return nil
	}

	limit := deps.Config.RateLimit.AbuseMaxAttempts
	window := deps.Config.RateLimit.AbuseWindow
	if limit <= 0 || window <= 0 {
		return nil
	}

	return deps.RateLimiter.RateLimit(middleware.RateLimitRule{
		Name:   "abuse",
		Limit:  limit,
		Window: window,
	})
}

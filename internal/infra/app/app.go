package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/core/port"
	"github.com/binaryatrocity/beer-api/internal/infra/config"
	"github.com/binaryatrocity/beer-api/internal/infra/database"
	kafkainfra "github.com/binaryatrocity/beer-api/internal/infra/kafka"
	"github.com/binaryatrocity/beer-api/internal/infra/logger"
	redisinfra "github.com/binaryatrocity/beer-api/internal/infra/redis"
	"github.com/binaryatrocity/beer-api/internal/infra/security"
	"github.com/binaryatrocity/beer-api/internal/infra/telemetry"
	postgresrepo "github.com/binaryatrocity/beer-api/internal/repository/postgres"
	redisrepo "github.com/binaryatrocity/beer-api/internal/repository/redis"
	"github.com/binaryatrocity/beer-api/internal/transport/http/middleware"
	"github.com/binaryatrocity/beer-api/internal/transport/http/routes"
	"github.com/binaryatrocity/beer-api/internal/usecase"
)

// Application bundles the long-lived resources behind the HTTP server.
type Application struct {
	cfg     *config.AppConfig
	engine  *gin.Engine
	logger  *zap.Logger
	pool    *pgxpool.Pool
	redis   *redisinfra.Client
	tracing *telemetry.TracerProvider
}

// New wires configuration into a runnable application.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	tracing, err := telemetry.Attach(ctx, cfg.Telemetry, log)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init redis: %w", err)
	}

	tokens, err := security.NewTokenAuthenticator(cfg.Auth.TokenSecret, cfg.App.Name, cfg.Auth.TokenTTL)
	if err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init token authenticator: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)

	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(producer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	abuseWindow := cfg.RateLimit.AbuseWindow
	if abuseWindow <= 0 {
		abuseWindow = time.Minute
	}
	rateLimitStore := redisrepo.NewRateLimitRepository(redisClient.Client(), redisrepo.SlidingWindowConfig{
		KeyPrefix: "beer:rate-limit",
		TTL:       abuseWindow * 2,
	})
	rateLimiter := middleware.NewRateLimiter(rateLimitStore, log)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	resolver := usecase.NewResolverService(repos.Beers, repos.Glasses)
	services := routes.ServiceSet{
		Auth:         usecase.NewAuthService(repos.Users, tokens),
		Registration: usecase.NewRegistrationService(repos.Users, nil, eventPublisher, log),
		Users:        usecase.NewUserService(repos.Users),
		Beers:        usecase.NewBeerService(repos.Beers, resolver, eventPublisher, log, cfg.RateLimit.BeerWindow),
		Glasses:      usecase.NewGlassService(repos.Glasses),
		Reviews:      usecase.NewReviewService(repos.Reviews, resolver, eventPublisher, log, cfg.RateLimit.ReviewWindow),
		Favorites:    usecase.NewFavoriteService(repos.Favorites, resolver),
	}

	engine := routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		RateLimiter: rateLimiter,
		Metrics:     metrics,
		Services:    services,
		Database:    pool,
		Cache:       redisClient,
	})

	return &Application{
		cfg:     cfg,
		engine:  engine,
		logger:  log,
		pool:    pool,
		redis:   redisClient,
		tracing: tracing,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()
	defer func() {
		if a.tracing != nil {
			_ = a.tracing.Shutdown(context.Background())
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting beer API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}

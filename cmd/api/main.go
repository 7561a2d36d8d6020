package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pantrychef/backend/config"
	"github.com/pantrychef/backend/internal/api"
	"github.com/pantrychef/backend/internal/database"
	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/repository"
	"github.com/pantrychef/backend/internal/router"
	"github.com/pantrychef/backend/internal/server"
	"github.com/pantrychef/backend/internal/service"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg, log)
	if err != nil {
		// Redis only backs rate limiting; the API can run without it.
		log.WithError(err).Warn("redis unavailable, generation rate limiting disabled")
		redisClient = nil
	}

	generator, err := service.NewLLMService(log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize generation service")
	}

	recipeRepo := repository.NewGormRecipeRepository(db)
	prefRepo := repository.NewGormPreferenceRepository(db)

	recipeService := service.NewRecipeService(recipeRepo, prefRepo, generator, log)
	preferenceService := service.NewPreferenceService(prefRepo, log)

	var imageService *service.ImageService
	if os.Getenv("S3_DISABLED") == "" {
		s3Config, err := config.NewS3Config(context.Background())
		if err != nil {
			log.WithError(err).Warn("s3 unavailable, recipe image uploads disabled")
		} else {
			imageService = service.NewImageService(s3Config, log)
		}
	}

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewGenerationRateLimiter(redisClient)
	}

	engine := router.Setup(
		api.NewRecipeHandler(recipeService, imageService),
		api.NewLLMHandler(recipeService),
		api.NewPreferenceHandler(preferenceService),
		api.NewHealthHandler(db, redisClient),
		middleware.NewJWTValidator(cfg.JWTSecret),
		limiter,
	)

	srv := server.New(cfg, engine, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.WithError(err).Fatal("server error")
		}
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server shutdown error")
	}
	log.Info("server stopped")
}

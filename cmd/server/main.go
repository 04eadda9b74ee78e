package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"farmersconnect/docs" // swagger docs

	"farmersconnect/internal/cache"
	"farmersconnect/internal/catalog"
	"farmersconnect/internal/config"
	"farmersconnect/internal/db"
	"farmersconnect/internal/handler"
	"farmersconnect/internal/logger"
	"farmersconnect/internal/metrics"
	"farmersconnect/internal/repository"
	"farmersconnect/internal/router"
	"farmersconnect/internal/service"
)

// @title Farmers Connect API
// @version 1.0
// @description Registration, crop recommendation and commodity price prediction for farmers.
// @host localhost:5000
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
		log.Warn().Err(err).Msg("falling back to default logger")
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database init")
	}

	var (
		userRepo repository.UserRepository
		obsRepo  repository.CropObservationRepository
	)
	if gormDB != nil {
		if err := db.Migrate(gormDB); err != nil {
			log.Fatal().Err(err).Msg("auto-migrate")
		}
		userRepo = repository.NewUserRepository(gormDB)
		obsRepo = repository.NewCropObservationRepository(gormDB)
	} else {
		userRepo = repository.NewMemoryUserRepository()
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("credential store ready")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	rec := metrics.New()
	crop, price := loadModels(cfg, log)
	cat := catalog.Load(cfg.DatasetPath, log)

	// Initialize services
	authService := service.NewAuthService(userRepo, log, rec)
	cropService := service.NewCropService(crop, obsRepo, log, rec)
	priceService := service.NewPriceService(price, cat, cacheClient, cfg.PriceCacheTTL, log, rec)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(
		e,
		cfg,
		log,
		rec,
		handler.NewAuthHandler(authService),
		handler.NewCropHandler(cropService),
		handler.NewPriceHandler(priceService),
		handler.NewHealthHandler(gormDB, cacheClient, cropService, priceService),
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

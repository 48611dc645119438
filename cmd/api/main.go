package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/qr-attendance-api/internal/config"
	"github.com/noah-isme/qr-attendance-api/internal/database"
	"github.com/noah-isme/qr-attendance-api/internal/handler"
	"github.com/noah-isme/qr-attendance-api/internal/middleware"
	"github.com/noah-isme/qr-attendance-api/internal/router"
	"github.com/noah-isme/qr-attendance-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", cfg.AppName).Logger()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := database.Open(startCtx, cfg.StoreDriver, cfg.DatabaseURL, cfg.DatabaseName, logger)
	if err != nil {
		cancelStart()
		logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	logger.Info().Str("driver", store.Driver).Msg("store connected")

	redisClient, err := database.ConnectRedis(startCtx, cfg.RedisURL)
	cancelStart()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	validate := service.NewValidator()

	userService := service.NewUserService(store.Users, store.AttendanceLogs, redisClient, cfg.UsersCacheTTL, validate, logger)
	attendanceLogService := service.NewAttendanceLogService(store.AttendanceLogs, store.Users, validate, logger)

	userHandler := handler.NewUserHandler(userService, logger)
	attendanceLogHandler := handler.NewAttendanceLogHandler(attendanceLogService, logger,
		middleware.RateLimit("attendance_logs", cfg.RateLimitMax, cfg.RateLimitWindow))

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		JSONEncoder:  sonic.ConfigStd.Marshal,
		JSONDecoder:  sonic.ConfigStd.Unmarshal,
		UnescapePath: true,
		Immutable:    true,
	})

	middleware.Register(app, middleware.Config{
		Logger:      &logger,
		AllowOrigin: cfg.FrontendOrigin,
		AccessLog:   cfg.AppEnv == "development",
	})
	router.Register(app, cfg, router.Dependencies{
		UserHandler:          userHandler,
		AttendanceLogHandler: attendanceLogHandler,
		Store:                store,
		Cache:                redisClient,
	})

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddress()).Str("prefix", cfg.APIPrefix).Msg("server listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, store, logger)
}

func waitForShutdown(app *fiber.App, store *database.Store, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := store.Close(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to close store")
	}
	logger.Info().Msg("server stopped")
}

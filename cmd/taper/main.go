package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/oxbowlabs/taper/internal/api"
	"github.com/oxbowlabs/taper/internal/cache"
	"github.com/oxbowlabs/taper/internal/config"
	"github.com/oxbowlabs/taper/internal/db"
	"github.com/oxbowlabs/taper/internal/logging"
	"github.com/oxbowlabs/taper/internal/services"
	"go.uber.org/zap"
)

func main() {
	location := mustLoadLocation(os.Getenv("TZ"))
	time.Local = location

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger := logging.New(cfg.Env)
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	repositories := db.NewRepositories(database)

	mirror := cache.New()
	dispatcher := services.NewDispatcher()

	ledger := services.NewPointsLedger(repositories.Points, logger)
	achievements := services.NewAchievementService(repositories.Achievements, repositories.Users, ledger, logger)
	challenges := services.NewChallengeService(repositories.Challenges, ledger, logger)
	dispatcher.Subscribe(achievements)
	dispatcher.Subscribe(challenges)

	streaks := services.NewStreakService(repositories.Streaks, dispatcher, logger)
	aggregator := services.NewAggregator(
		repositories.Meals,
		repositories.WeightLogs,
		repositories.StepLogs,
		repositories.WaterLogs,
		repositories.Shots,
		repositories.SideEffects,
		repositories.DailyLogs,
		mirror,
		dispatcher,
		logger,
	)
	metrics := services.NewMetricService(
		repositories.Meals,
		repositories.WeightLogs,
		repositories.StepLogs,
		repositories.WaterLogs,
		repositories.Shots,
		repositories.SideEffects,
		mirror,
		aggregator,
		streaks,
		dispatcher,
		logger,
	)
	syncer := services.NewSyncService(
		repositories.Meals,
		repositories.WeightLogs,
		repositories.StepLogs,
		repositories.WaterLogs,
		repositories.Shots,
		repositories.SideEffects,
		repositories.DailyLogs,
		mirror,
		aggregator,
		achievements,
		challenges,
		logger,
	)

	handler := api.NewHandler(api.HandlerDeps{
		Auth:         services.NewAuthService(repositories.Users),
		Metrics:      metrics,
		Scores:       services.NewScoreService(mirror),
		Streaks:      streaks,
		Achievements: achievements,
		Challenges:   challenges,
		Ledger:       ledger,
		Journey:      services.NewJourneyService(repositories.Journey, dispatcher, logger),
		Syncer:       syncer,
		Mirror:       mirror,
		SecretKey:    cfg.SecretKey,
		TokenTTL:     cfg.TokenTTL,
		Logger:       logger,
	})

	app := fiber.New(fiber.Config{
		AppName:               "Taper",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestLogger(logger))
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("taper listening",
		zap.String("port", cfg.Port),
		zap.String("db", cfg.DBPath),
		zap.String("tz", location.String()))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// requestLogger emits one structured line per request through the shared
// logger instead of fiber's plain-text middleware.
func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(started)))
		return err
	}
}

func mustLoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/terraincognita07/auragon/internal/api"
	"github.com/terraincognita07/auragon/internal/config"
	"github.com/terraincognita07/auragon/internal/db"
	"github.com/terraincognita07/auragon/internal/i18n"
	"github.com/terraincognita07/auragon/internal/pressure"
	"github.com/terraincognita07/auragon/internal/services"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	database, err := db.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		_ = db.Close(database)
	}()

	repos := db.NewRepositories(database)
	logs := services.NewLogService(repos.Logs, logger)
	options := services.NewOptionService(repos.Options, logger)
	onboarding := services.NewOnboardingService(repos.State, options, logger)

	launch, err := onboarding.LoadLaunchState()
	if err != nil {
		return fmt.Errorf("load launch state: %w", err)
	}

	i18nManager, err := i18n.NewDefaultManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(api.Dependencies{
		Logs:       logs,
		Options:    options,
		Onboarding: onboarding,
		Export:     services.NewExportService(logs),
		Pressure:   pressure.NewMockProvider(nil),
		Launch:     launch,
		I18n:       i18nManager,
		Logger:     logger,
		Location:   cfg.Location,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newApp(handler)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("auragon listening",
			zap.String("addr", cfg.ListenAddress()),
			zap.String("db", cfg.DBPath),
			zap.String("tz", cfg.Location.String()),
			zap.String("initial_screen", launch.InitialScreen()),
		)
		return app.Listen(cfg.ListenAddress())
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")

		// Closing the feeds ends open event streams.
		logs.Close()
		options.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})
	return group.Wait()
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Auragon",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New(compress.Config{
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/events/")
		},
	}))
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

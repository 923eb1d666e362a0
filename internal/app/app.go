package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/Lednacek-Dev/converter/internal/adapters/cache"
	"github.com/Lednacek-Dev/converter/internal/adapters/httpclient"
	"github.com/Lednacek-Dev/converter/internal/adapters/postgres"
	"github.com/Lednacek-Dev/converter/internal/api"
	"github.com/Lednacek-Dev/converter/internal/config"
	"github.com/Lednacek-Dev/converter/internal/platform/db"
	httpserver "github.com/Lednacek-Dev/converter/internal/platform/http"
	"github.com/Lednacek-Dev/converter/internal/rate"
	"github.com/Lednacek-Dev/converter/internal/rate/handler"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (migrations, DB connect)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Schema
	if err = db.Migrate(startupCtx, appCfg.DbServer); err != nil {
		logrus.WithError(err).Error("Error applying migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External clients
	feedClient := httpclient.NewCNBFeedClient(baseHTTPClient, appCfg.CNBFeed.BaseURL)

	// Date-presence cache
	dateCache, err := cache.NewDateCache(appCfg.Cache.MaxDates)
	if err != nil {
		logrus.WithError(err).Error("Failed to create date cache")
		return err
	}
	defer dateCache.Close()

	// Repositories
	rateRepo := postgres.NewRateRepository(pool)

	// Services
	clock := clockwork.NewRealClock()
	fetchDelay := time.Duration(appCfg.CNBFeed.FetchDelayMs) * time.Millisecond
	coordinator := rate.NewCoordinator(rateRepo, feedClient, dateCache, clock, fetchDelay)
	rateService := rate.NewService(coordinator, rateRepo, clock)

	scheduler := rate.NewScheduler(coordinator, time.Duration(appCfg.Scheduler.RefreshIntervalSec)*time.Second)
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	rateHandler := handler.NewRateHandler(rateService)
	router := api.NewRouter(rateHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

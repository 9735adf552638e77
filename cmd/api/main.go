package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/relaydesk/relaydesk/config"
	"github.com/relaydesk/relaydesk/internal/app"
	"github.com/relaydesk/relaydesk/pkg/logger"
)

// osExit is a variable to allow mocking os.Exit in tests
var osExit = os.Exit

// NewAppFunc defines the function signature for creating a new app
type NewAppFunc func(cfg *config.Config, opts ...app.AppOption) app.AppInterface

func defaultNewApp(cfg *config.Config, opts ...app.AppOption) app.AppInterface {
	return app.NewApp(cfg, opts...)
}

// runServer initializes the app and serves until ctx is cancelled
func runServer(ctx context.Context, cfg *config.Config, appLogger logger.Logger, newApp NewAppFunc) error {
	appInstance := newApp(cfg, app.WithLogger(appLogger))

	if err := appInstance.Initialize(); err != nil {
		appLogger.WithField("error", err.Error()).Error("Failed to initialize application")
		return err
	}

	if err := appInstance.Run(ctx); err != nil {
		appLogger.WithField("error", err.Error()).Error("Server error")
		return err
	}

	appLogger.Info("Server shut down gracefully")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)
	appLogger.Info(fmt.Sprintf("Starting API server on %s", cfg.Addr()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runServer(ctx, cfg, appLogger, defaultNewApp); err != nil {
		osExit(1)
	}
}

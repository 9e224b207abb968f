package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"bolso/internal/shared/config"
	"bolso/internal/shared/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load .env if present; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Initialize telemetry: metrics and traces toggle independently.
	telemetryCfg := telemetry.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.Telemetry.Environment,
	}
	if cfg.Telemetry.Enabled {
		telemetryCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	}
	if cfg.Metrics.Enabled {
		telemetryCfg.MetricsPort = cfg.Metrics.Port
	}
	shutdown, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	deps, err := NewDependencies(cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	// Bring the controllers up: each subscribes to its mutation channel
	// before issuing the initial fetch.
	deps.SessionCtrl.Initialize(ctx)
	deps.AccountCtrl.Initialize(ctx)
	deps.TransactionCtrl.Initialize(ctx)
	deps.BudgetCtrl.Initialize(ctx)
	deps.GoalCtrl.Initialize(ctx)
	deps.InvestmentCtrl.Initialize(ctx)
	deps.NotificationCtrl.Initialize(ctx)

	go runDemoSession(ctx, deps)

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	return nil
}

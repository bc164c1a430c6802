package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/internal/config"
	"stockfolio/internal/database"
	"stockfolio/internal/events"
	"stockfolio/internal/logger"
	"stockfolio/internal/models"
	"stockfolio/internal/quotes"
	"stockfolio/internal/realtime"
	"stockfolio/internal/router"
	"stockfolio/internal/scheduler"
	"stockfolio/internal/services"
	"stockfolio/internal/validator"
)

// @title           Stockfolio API
// @version         1.0
// @description     Stockfolio tracks stock portfolios against a simulated cash account with live quotes.

// @host      localhost:8080
// @BasePath  /api

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	dbManager, err := database.NewManager(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	if err := database.Seed(db, decimal.NewFromFloat(cfg.StartingBalance)); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	publisher := events.New(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warnw("failed to close event publisher", "error", err)
		}
	}()

	// Initialize services
	portfolioService := services.NewPortfolioService(db)
	stockService := services.NewStockService(db)
	netWorthService := services.NewNetWorthService(db)
	svc := router.Services{
		Portfolio:   portfolioService,
		Stock:       stockService,
		Trade:       services.NewTradeService(db, publisher, cfg.TradeTimeout),
		NetWorth:    netWorthService,
		Account:     services.NewAccountService(db),
		Dashboard:   services.NewDashboardService(db, portfolioService),
		Transaction: services.NewTransactionService(db),
		Audit:       services.NewAuditService(db),
	}

	provider := quotes.NewYahooProvider(cfg.Quotes.BaseURL, cfg.Quotes.RequestTimeout)
	feed := quotes.NewFeed(provider, stockService, cfg.Quotes.EmitInterval)
	hub := realtime.NewHub(feed, cfg.CORSOrigin)
	defer hub.Close()

	jobs, err := scheduler.New()
	if err != nil {
		return err
	}
	if cfg.Quotes.Enabled {
		err := jobs.NewIntervalJob("refresh-quotes", func(ctx context.Context) error {
			_, err := feed.Refresh(ctx)
			return err
		}, cfg.Quotes.RefreshInterval, true)
		if err != nil {
			return err
		}
	} else {
		log.Info("Quote refresh disabled, prices only change through the ledger")
	}
	err = jobs.NewIntervalJob("net-worth-snapshot", func(ctx context.Context) error {
		_, err := netWorthService.RecordSnapshot(ctx, models.SnapshotSourceScheduled)
		return err
	}, cfg.SnapshotInterval, false)
	if err != nil {
		return err
	}
	jobs.Start()
	defer func() {
		if err := jobs.Stop(); err != nil {
			log.Warnw("failed to stop scheduler", "error", err)
		}
	}()

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying DB: %w", err)
	}

	validator.Register()
	engine := router.New(svc, router.Options{DB: sqlDB, Hub: hub, CORSOrigin: cfg.CORSOrigin})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Stockfolio server on port %s", cfg.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}

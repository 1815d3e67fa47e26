package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/personal-finance-ledger/internal/api_gateway"
	"github.com/personal-finance-ledger/internal/config"
	"github.com/personal-finance-ledger/internal/data/memory"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/importer"
	"github.com/personal-finance-ledger/internal/logger"
	"github.com/personal-finance-ledger/internal/platform/messaging/producers"
	"github.com/personal-finance-ledger/internal/service"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("ledger_api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	// Publishers are no-ops unless KAFKA_ENABLED is set
	publishers, err := producers.NewPublishers(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize Kafka publishers", "error", err)
		os.Exit(1)
	}

	store := memory.NewLedgerStore()
	ledger := service.NewLedgerService(log, store, publishers.Events, publishers.DeadLetter)
	files := importer.NewFileImporter(log, ledger, cfg.Ledger.DefaultFormat)

	if cfg.Ledger.DataFile != "" {
		result, err := files.ImportFile(appCtx, cfg.Ledger.DataFile, "")
		switch {
		case err == nil:
			log.Info("Ledger loaded", "path", cfg.Ledger.DataFile,
				"accounts", result.Accounts, "categories", result.Categories, "transactions", result.Transactions)
		case errors.Is(err, shared.NotFoundError{Kind: shared.KindSource}):
			log.Info("No ledger file yet, starting empty", "path", cfg.Ledger.DataFile)
		default:
			log.Error("Failed to load ledger file", "path", cfg.Ledger.DataFile, "error", err)
			os.Exit(1)
		}
	}

	server := api_gateway.NewServer(log, cfg, ledger)
	log.Info("REST server initialized")

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	cancelAppCtx()

	log.Info("Starting graceful shutdown...")

	var shutdownErr error
	if err := server.Stop(context.Background()); err != nil {
		log.Error("Error during server shutdown", "error", err)
		shutdownErr = err
	}

	// The ledger is saved after the server stops taking writes
	if cfg.Ledger.DataFile != "" {
		if err := files.ExportFile(context.Background(), cfg.Ledger.DataFile, ""); err != nil {
			log.Error("Failed to save ledger file", "path", cfg.Ledger.DataFile, "error", err)
			shutdownErr = err
		} else {
			log.Info("Ledger saved", "path", cfg.Ledger.DataFile)
		}
	}

	if err := publishers.Close(); err != nil {
		log.Error("Error closing Kafka publishers", "error", err)
		shutdownErr = err
	}

	if serverErr != nil || shutdownErr != nil {
		log.Error("Server shutdown completed with errors")
		os.Exit(1)
	}
	log.Info("Server shutdown completed successfully")
}

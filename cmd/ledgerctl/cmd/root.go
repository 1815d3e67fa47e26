// Package cmd provides CLI commands for ledgerctl.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/personal-finance-ledger/internal/config"
	"github.com/personal-finance-ledger/internal/data/memory"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/importer"
	"github.com/personal-finance-ledger/internal/logger"
	"github.com/personal-finance-ledger/internal/platform/messaging/producers"
	"github.com/personal-finance-ledger/internal/service"
	"github.com/spf13/cobra"
)

// app is the state shared by every command of one invocation
type app struct {
	configName string
	dataFile   string
	debug      bool

	cfg        *config.Config
	log        *slog.Logger
	publishers *producers.Publishers
	ledger     service.LedgerService
	files      *importer.FileImporter

	// dirty marks the ledger for saving once the command succeeds
	dirty bool
}

// NewRootCmd builds the full command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Manage a personal finance ledger stored in a flat file",
		Long: `ledgerctl keeps accounts, categories and transactions in a single
JSON or YAML file and answers simple questions about them. CSV is
accepted for import and export only.

The data file is loaded before every command and written back after
commands that change the ledger.

Example:
  ledgerctl --data ledger.json accounts add Checking 1000
  ledgerctl --data ledger.json import bank.csv
  ledgerctl --data ledger.json net --from 2024-01-01 --to 2024-01-31`,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dataFile, "data", "", "ledger data file (default from LEDGER_DATA_FILE)")
	rootCmd.PersistentFlags().StringVar(&a.configName, "config", "ledgerctl", "config name, read from <name>.env")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newImportCmd(a),
		newExportCmd(a),
		newBatchImportCmd(a),
		newAccountsCmd(a),
		newCategoriesCmd(a),
		newTransactionsCmd(a),
		newNetCmd(a),
		newGroupsCmd(a),
		newSummaryCmd(a),
		newRecalcCmd(a),
		newEventsCmd(a),
	)
	return rootCmd
}

// Execute runs the command tree against os.Args
func Execute() error {
	return NewRootCmd().Execute()
}

// open loads configuration, wires the ledger and reads the data file
func (a *app) open(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(a.configName)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := logger.ParseLevel(cfg.Logging.Level)
	if a.debug {
		level = slog.LevelDebug
	}
	a.log = logger.NewTextLogger(cmd.ErrOrStderr(), level)

	if a.dataFile == "" {
		a.dataFile = cfg.Ledger.DataFile
	}
	if err := config.ValidateDataFile(a.dataFile, cfg.Ledger.DefaultFormat); err != nil {
		return err
	}

	ctx := cmd.Context()
	a.publishers, err = producers.NewPublishers(ctx, a.log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("failed to initialize publishers: %w", err)
	}

	a.ledger = service.NewLedgerService(a.log, memory.NewLedgerStore(), a.publishers.Events, a.publishers.DeadLetter)
	a.files = importer.NewFileImporter(a.log, a.ledger, cfg.Ledger.DefaultFormat)

	if a.dataFile == "" {
		a.log.Debug("no data file, ledger is in memory only")
		return nil
	}

	result, err := a.files.ImportFile(ctx, a.dataFile, "")
	switch {
	case err == nil:
		a.log.Debug("ledger loaded", "path", a.dataFile,
			"accounts", result.Accounts, "categories", result.Categories, "transactions", result.Transactions)
		return nil
	case errors.Is(err, shared.NotFoundError{Kind: shared.KindSource}):
		a.log.Debug("data file does not exist yet", "path", a.dataFile)
		return nil
	default:
		return fmt.Errorf("failed to load %s: %w", a.dataFile, err)
	}
}

// close saves a changed ledger and releases the publishers
func (a *app) close(ctx context.Context) error {
	var saveErr error
	if a.dirty && a.dataFile != "" {
		saveErr = a.files.ExportFile(ctx, a.dataFile, "")
		if saveErr == nil {
			a.log.Debug("ledger saved", "path", a.dataFile)
		}
	}
	if err := a.publishers.Close(); err != nil {
		a.log.Warn("failed to close publishers", "error", err)
	}
	return saveErr
}

// changed marks the ledger for saving
func (a *app) changed() {
	a.dirty = true
}

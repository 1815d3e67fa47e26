package cmd

import (
	"fmt"

	"github.com/personal-finance-ledger/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Append the records of a JSON, CSV or YAML file to the ledger",
		Long: `Append every account, category and transaction of a document to the
ledger. The document is parsed completely first, so a malformed file
leaves the ledger untouched.

Example:
  ledgerctl import bank.csv
  ledgerctl import export.txt --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.files.ImportFile(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			a.changed()
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d accounts, %d categories, %d transactions from %s\n",
				result.Accounts, result.Categories, result.Transactions, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "document format: json, csv or yaml (default from extension)")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the whole ledger to a file, or to stdout with -",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				if format == "" {
					format = a.cfg.Ledger.DefaultFormat
				}
				out, err := a.ledger.Export(cmd.Context(), format)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			if err := a.files.ExportFile(cmd.Context(), args[0], format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported ledger to %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "document format: json, csv or yaml (default from extension)")
	return cmd
}

func newBatchImportCmd(a *app) *cobra.Command {
	var (
		format  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "batch-import <file>...",
		Short: "Import many files, parsing them in parallel",
		Long: `Parse every file on a worker pool and append the ones that parse, in the
order given. A file that fails does not stop the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers <= 0 {
				workers = a.cfg.WorkerPool.Size
			}
			batch, err := importer.NewBatchImporter(a.log, a.ledger, workers, a.cfg.Ledger.DefaultFormat)
			if err != nil {
				return fmt.Errorf("failed to create worker pool: %w", err)
			}
			defer batch.Shutdown()

			results := batch.ImportFiles(cmd.Context(), args, format)

			failed := 0
			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", r.Path, r.Err)
					continue
				}
				fmt.Fprintf(out, "ok   %s: %d accounts, %d categories, %d transactions\n",
					r.Path, r.Result.Accounts, r.Result.Categories, r.Result.Transactions)
			}

			if failed < len(results) {
				a.changed()
			}
			if failed > 0 {
				// Post-run hooks are skipped on error, so the loaded files are saved here
				if err := a.close(cmd.Context()); err != nil {
					return err
				}
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "document format for every file (default from extension)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel parsers (default from WORKER_POOL_SIZE)")
	return cmd
}

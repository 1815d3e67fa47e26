package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newTransactionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"transaction", "tx"},
		Short:   "Add, list and remove transactions",
	}

	cmd.AddCommand(newTransactionAddCmd(a), newTransactionListCmd(a), &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUUID("transaction", args[0])
			if err != nil {
				return err
			}
			if err := a.ledger.RemoveTransaction(cmd.Context(), id); err != nil {
				return err
			}
			a.changed()
			return nil
		},
	})
	return cmd
}

func newTransactionAddCmd(a *app) *cobra.Command {
	var typ, accountID, amount, date, categoryID, note string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction; run recalc to update the account balance",
		Long: `Record a transaction against an account and a category.

Example:
  ledgerctl transactions add --type Expense --account <id> --category <id> \
    --amount 12.50 --date 2024-01-16 --note lunch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, err := shared.ParseDirection(typ)
			if err != nil {
				return err
			}
			acctID, err := parseUUID("account", accountID)
			if err != nil {
				return err
			}
			catID, err := parseUUID("category", categoryID)
			if err != nil {
				return err
			}
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			day := time.Now().UTC().Truncate(24 * time.Hour)
			if date != "" {
				if day, err = parseDay(date); err != nil {
					return err
				}
			}

			t, err := a.ledger.AddTransaction(cmd.Context(), service.TransactionInput{
				Type:       direction,
				AccountID:  acctID,
				Amount:     amt,
				Date:       day,
				CategoryID: catID,
				Note:       note,
			})
			if err != nil {
				return err
			}
			a.changed()
			fmt.Fprintln(cmd.OutOrStdout(), t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Income or Expense (required)")
	cmd.Flags().StringVar(&accountID, "account", "", "account id (required)")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "positive amount (required)")
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&note, "note", "", "free text note")

	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("category")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func newTransactionListCmd(a *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions in the order they were recorded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter uuid.UUID
			if accountID != "" {
				id, err := parseUUID("account", accountID)
				if err != nil {
					return err
				}
				filter = id
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tACCOUNT\tCATEGORY\tNOTE")
			for _, t := range a.ledger.ListTransactions(cmd.Context()) {
				if filter != uuid.Nil && t.AccountID != filter {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date.Format(time.DateOnly), t.Type, t.Amount.StringFixed(2), t.AccountID, t.CategoryID, t.Note)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "only transactions of this account")
	return cmd
}

func parseDay(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	start, err := parseDay(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDay(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

package cmd

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newNetCmd(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "net",
		Short: "Income minus expense between two dates, both inclusive",
		Long: `Print income minus expense for transactions dated within the range.

Example:
  ledgerctl net --from 2024-01-01 --to 2024-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(from, to)
			if err != nil {
				return err
			}
			net := a.ledger.NetDifference(cmd.Context(), start, end)
			fmt.Fprintln(cmd.OutOrStdout(), net.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD) (required)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD) (required)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Income, expense and net between two dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(from, to)
			if err != nil {
				return err
			}
			s := a.ledger.Summarize(cmd.Context(), start, end)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transactions: %d\n", s.Count)
			fmt.Fprintf(out, "Income:       %s\n", s.Income.StringFixed(2))
			fmt.Fprintf(out, "Expense:      %s\n", s.Expense.StringFixed(2))
			fmt.Fprintf(out, "Net:          %s\n", s.Net.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD) (required)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD) (required)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

func newGroupsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "Signed total per category label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := a.ledger.GroupByCategory(cmd.Context())
			labels := make([]string, 0, len(groups))
			for label := range groups {
				labels = append(labels, label)
			}
			slices.Sort(labels)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, label := range labels {
				fmt.Fprintf(w, "%s\t%s\n", label, groups[label].StringFixed(2))
			}
			return w.Flush()
		},
	}
}

func newRecalcCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc <account-id>",
		Short: "Rebuild an account balance from its initial balance and transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUUID("account", args[0])
			if err != nil {
				return err
			}
			bal, err := a.ledger.RecalculateBalance(cmd.Context(), id)
			if err != nil {
				return err
			}
			a.changed()
			fmt.Fprintln(cmd.OutOrStdout(), bal.StringFixed(2))
			return nil
		},
	}
}

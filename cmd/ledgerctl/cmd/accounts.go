package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newAccountsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Add, list, rename and remove accounts",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name> [initial-balance]",
			Short: "Open an account, balance defaults to 0",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				initial := decimal.Zero
				if len(args) == 2 {
					var err error
					if initial, err = decimal.NewFromString(args[1]); err != nil {
						return fmt.Errorf("invalid initial balance %q: %w", args[1], err)
					}
				}

				acc, err := a.ledger.AddAccount(cmd.Context(), args[0], initial)
				if err != nil {
					return err
				}
				a.changed()
				fmt.Fprintln(cmd.OutOrStdout(), acc.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List accounts with their balances",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tBALANCE\tINITIAL")
				for _, acc := range a.ledger.ListAccounts(cmd.Context()) {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", acc.ID, acc.Name, acc.Balance.StringFixed(2), acc.InitialBalance.StringFixed(2))
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "rename <id> <name>",
			Short: "Rename an account",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseUUID("account", args[0])
				if err != nil {
					return err
				}
				if _, err := a.ledger.RenameAccount(cmd.Context(), id, args[1]); err != nil {
					return err
				}
				a.changed()
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove an account, keeping its transactions",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseUUID("account", args[0])
				if err != nil {
					return err
				}
				if err := a.ledger.RemoveAccount(cmd.Context(), id); err != nil {
					return err
				}
				a.changed()
				return nil
			},
		},
	)
	return cmd
}

func parseUUID(kind, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q", kind, s)
	}
	return id, nil
}

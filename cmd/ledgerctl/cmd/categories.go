package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Add, list, update and remove categories",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <Income|Expense> <label>",
			Short: "Add a category",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				typ, err := shared.ParseDirection(args[0])
				if err != nil {
					return err
				}
				c, err := a.ledger.AddCategory(cmd.Context(), typ, args[1])
				if err != nil {
					return err
				}
				a.changed()
				fmt.Fprintln(cmd.OutOrStdout(), c.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTYPE\tLABEL")
				for _, c := range a.ledger.ListCategories(cmd.Context()) {
					fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Type, c.Label)
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "update <id> <Income|Expense> <label>",
			Short: "Change the type and label of a category",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseUUID("category", args[0])
				if err != nil {
					return err
				}
				typ, err := shared.ParseDirection(args[1])
				if err != nil {
					return err
				}
				if _, err := a.ledger.UpdateCategory(cmd.Context(), id, typ, args[2]); err != nil {
					return err
				}
				a.changed()
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a category; its transactions group under \"none\"",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseUUID("category", args[0])
				if err != nil {
					return err
				}
				if err := a.ledger.RemoveCategory(cmd.Context(), id); err != nil {
					return err
				}
				a.changed()
				return nil
			},
		},
	)
	return cmd
}

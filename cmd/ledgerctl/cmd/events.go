package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/platform/messaging/consumers"
	"github.com/spf13/cobra"
)

func newEventsCmd(a *app) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Follow ledger import events from Kafka until interrupted",
		Long: `Print every LEDGER_IMPORTED and IMPORT_REJECTED event published by
ledger_api or ledgerctl imports. Requires KAFKA_ENABLED=true.

Example:
  KAFKA_ENABLED=true ledgerctl events --group audit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kafkaCfg := a.cfg.Kafka
			if group != "" {
				kafkaCfg.ConsumerGroup = group
			}

			consumer, err := consumers.NewLedgerEventConsumer(a.log, &kafkaCfg)
			if err != nil {
				return err
			}
			defer consumer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return consumer.Run(ctx, func(_ context.Context, e shared.LedgerEvent) error {
				_, err := fmt.Fprintf(out, "%s %-15s %-4s %s accounts=%d categories=%d transactions=%d\n",
					e.OccurredAt.Format(time.RFC3339), e.Kind, e.Format, e.Source,
					e.Accounts, e.Categories, e.Transactions)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "consumer group (default from KAFKA_CONSUMER_GROUP)")
	return cmd
}

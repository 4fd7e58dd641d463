package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var outboxCmd = &cobra.Command{
	Use:   "outbox",
	Short: "Inspect and deliver outbox events",
}

var outboxDrainCmd = &cobra.Command{
	Use:   "drain",
	Short: "Deliver pending outbox events once",
	Example: `  # Deliver up to 500 pending events
  clubledger outbox drain --batch-size 500`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		batchSize, _ := cmd.Flags().GetInt("batch-size")
		if batchSize <= 0 {
			batchSize = a.cfg.OutboxBatchSize
		}

		delivered, err := a.services.Dispatcher.Drain(cmd.Context(), batchSize)
		if err != nil {
			return fmt.Errorf("drain outbox: %w", err)
		}
		a.logger.Info("Outbox drained", slog.Int("delivered", delivered), slog.Int("batch_size", batchSize))
		fmt.Fprintf(cmd.OutOrStdout(), "delivered %d event(s)\n", delivered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(outboxCmd)
	outboxCmd.AddCommand(outboxDrainCmd)
	outboxDrainCmd.Flags().Int("batch-size", 0, "Maximum events to deliver (default OUTBOX_BATCH_SIZE)")
}

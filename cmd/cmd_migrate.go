package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/corray333/backend-labs/booking/internal/config"
	"github.com/corray333/backend-labs/booking/internal/dal/postgres"
)

// booking-svc migrate [up|down|status]
var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or inspect database migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus},
	RunE: func(cmd *cobra.Command, args []string) error {
		command := postgres.MigrateUp
		if len(args) == 1 {
			command = args[0]
		}

		config.MustInit()
		viper.Set("postgres.auto_migrate", false)

		client := postgres.MustNewClient()
		defer client.Close()

		if err := client.Migrate(context.Background(), command); err != nil {
			return fmt.Errorf("migrate %s: %w", command, err)
		}

		return nil
	},
}

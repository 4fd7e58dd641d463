package main

import (
	"github.com/antusaha970/member-management-backend-sub000/internal/platform/config"
	"github.com/antusaha970/member-management-backend-sub000/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down]",
	Short: "Apply or revert database migrations",
	Long: `Apply every pending migration (up, the default) or revert the most
recent one (down). Migrations are read from MIGRATIONS_PATH.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		direction := database.MigrateUp
		if len(args) == 1 {
			direction = database.MigrateDirection(args[0])
		}
		return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, direction, logger)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

package cmd

import (
	"log"

	"github.com/spf13/cobra"

	config "skill-market.com/skill-market/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		database := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)
		sqlDB, err := database.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		log.Printf("schema migrated (%s)", cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

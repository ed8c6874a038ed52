package cmd

import (
	"github.com/spf13/cobra"

	"github.com/avnishka/BookBee/config"
	"github.com/avnishka/BookBee/util/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long: `Apply the embedded schema to DATABASE_URL. Statements are idempotent,
so running it against an up-to-date database is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := database.New(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.Migrate(cmd.Context(), db.DB); err != nil {
			return err
		}
		cmd.Println("schema applied")
		return nil
	},
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bookbee",
	Short: "BookBee peer-to-peer book marketplace",
	Long: `BookBee lets users list books for rent or sale, stage them in a cart,
check out into orders, chat with the other party and build trust through
reviews and credits.

Configuration is read from the environment (DATABASE_URL, JWT_SECRET, ...).`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command; with no subcommand it serves HTTP.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avnishka/BookBee/util/jwt"
)

var tokenTTL time.Duration

// tokenCmd mints a bearer token for local testing; production tokens come from the identity service.
var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue a development JWT for a user id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			secret = "local_dev_secret"
		}
		tok, err := jwt.Issue(secret, id, tokenTTL)
		if err != nil {
			return err
		}
		cmd.Println(tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}

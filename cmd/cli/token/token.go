package token

import (
	"fmt"
	"os"
	"time"

	"github.com/myrjola/interrogation-room/internal/auth"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "token",
	Title: "Token operations",
}

func init() {
	Mint.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
	Mint.Flags().String("issuer", "interrogation-room", "token issuer")
}

var Mint = &cobra.Command{
	Use:     "mint [userID]",
	GroupID: "token",
	Short:   "Mint a bearer token",
	Long:    `Mints a signed bearer token for the given user id using the JWT_SECRET environment variable`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			_, _ = fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
			return
		}
		ttl, err := cmd.Flags().GetDuration("ttl")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid ttl flag: %v\n", err)
			return
		}
		issuer, err := cmd.Flags().GetString("issuer")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid issuer flag: %v\n", err)
			return
		}

		authenticator := auth.NewJWTAuthenticator(secret, issuer, ttl)
		signed, err := authenticator.Mint(args[0], time.Now())
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Token minting error: %v\n", err)
			return
		}
		fmt.Println(signed)
	},
}

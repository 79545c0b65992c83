package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/interrogation-room/cmd/cli/seed"
	"github.com/myrjola/interrogation-room/cmd/cli/summary"
	"github.com/myrjola/interrogation-room/cmd/cli/token"
	"github.com/spf13/cobra"
)

func init() {
	if err := godotenv.Load(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}
	rootCmd.AddGroup(token.Group)
	rootCmd.AddCommand(token.Mint)
	rootCmd.AddGroup(seed.Group)
	rootCmd.AddCommand(seed.Keywords)
	rootCmd.AddGroup(summary.Group)
	rootCmd.AddCommand(summary.Generate)
}

var rootCmd = &cobra.Command{
	Use:  "interrogation-room-cli",
	Long: `Command line utilities for the interrogation room backend`,
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}

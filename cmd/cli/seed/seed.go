package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/myrjola/interrogation-room/internal/repositories"
	"github.com/myrjola/interrogation-room/internal/sqlite"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "seed",
	Title: "Database seeding",
}

func init() {
	Keywords.Flags().String("sqlite-url", "./interrogation-room.sqlite", "SQLite URL")
}

var Keywords = &cobra.Command{
	Use:     "keywords [word...]",
	GroupID: "seed",
	Short:   "Seed generation keywords",
	Long:    `Adds seed words used to flavour generated incident summaries`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dbURL, err := cmd.Flags().GetString("sqlite-url")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid sqlite-url flag: %v\n", err)
			return
		}
		db, err := sqlite.NewDatabase(dbURL)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Database error: %v\n", err)
			return
		}
		defer func() {
			_ = db.Close()
		}()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		keywords := repositories.NewKeywordRepository(db, logger)
		if err = keywords.Add(context.Background(), args...); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Keyword seeding error: %v\n", err)
			return
		}
		fmt.Printf("seeded %d keywords\n", len(args))
	},
}

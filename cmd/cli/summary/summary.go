package summary

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/myrjola/interrogation-room/internal/ai"
	"github.com/myrjola/interrogation-room/internal/interrogation"
	"github.com/myrjola/interrogation-room/internal/repositories"
	"github.com/myrjola/interrogation-room/internal/sqlite"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "summary",
	Title: "Summary operations",
}

func init() {
	Generate.Flags().String("sqlite-url", "./interrogation-room.sqlite", "SQLite URL")
	Generate.Flags().String("model", "gpt-4o-mini", "completion model")
}

var Generate = &cobra.Command{
	Use:     "gen",
	GroupID: "summary",
	Short:   "Generate an incident summary",
	Long:    `Generates a fresh incident summary with the completion engine and stores it in the database`,
	Run: func(cmd *cobra.Command, _ []string) {
		dbURL, err := cmd.Flags().GetString("sqlite-url")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid sqlite-url flag: %v\n", err)
			return
		}
		model, err := cmd.Flags().GetString("model")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid model flag: %v\n", err)
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
		engine := ai.NewClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_BASE_URL"), model)
		service := interrogation.NewSummaryService(
			repositories.NewSummaryRepository(db, logger),
			repositories.NewKeywordRepository(db, logger),
			engine,
			logger,
		)

		generated, err := service.Generate(context.Background())
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Summary generation error: %v\n", err)
			return
		}
		fmt.Printf("%s %s\n", generated.SummaryID, generated.SummaryName)
	},
}

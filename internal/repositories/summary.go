package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/myrjola/interrogation-room/internal/errors"
	"github.com/myrjola/interrogation-room/internal/models"
	"github.com/myrjola/interrogation-room/internal/sqlite"
)

// ErrSummaryNotFound is returned when no summary exists for the given id.
var ErrSummaryNotFound = errors.NewSentinel("summary not found")

// SummaryRepository stores incident summaries as JSON documents. Summaries
// are written once by the generation process and read-only afterwards.
type SummaryRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewSummaryRepository(db *sqlite.Database, logger *slog.Logger) *SummaryRepository {
	return &SummaryRepository{
		db:     db,
		logger: logger.With("source", "SummaryRepository"),
	}
}

// Create persists a new summary document.
func (r *SummaryRepository) Create(ctx context.Context, summary models.Summary, now time.Time) error {
	document, err := json.Marshal(summary)
	if err != nil {
		return errors.Wrap(err, "marshal summary document", slog.String("summary_id", summary.SummaryID))
	}

	stmt := `INSERT INTO summaries (summary_id, document, created_at) VALUES (?, ?, ?)`
	if _, err = r.db.ReadWrite.ExecContext(ctx, stmt, summary.SummaryID, string(document), now); err != nil {
		return errors.Wrap(err, "insert summary", slog.String("summary_id", summary.SummaryID))
	}
	return nil
}

// GetByID fetches one summary. Returns ErrSummaryNotFound when absent.
func (r *SummaryRepository) GetByID(ctx context.Context, summaryID string) (*models.Summary, error) {
	var document string
	stmt := `SELECT document FROM summaries WHERE summary_id = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &document, stmt, summaryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrSummaryNotFound, "get summary", slog.String("summary_id", summaryID))
		}
		return nil, errors.Wrap(err, "read summary", slog.String("summary_id", summaryID))
	}

	var summary models.Summary
	if err := json.Unmarshal([]byte(document), &summary); err != nil {
		return nil, errors.Wrap(err, "unmarshal summary document", slog.String("summary_id", summaryID))
	}
	return &summary, nil
}

// GetAll lists every summary, newest first.
func (r *SummaryRepository) GetAll(ctx context.Context) ([]models.Summary, error) {
	var documents []string
	stmt := `SELECT document FROM summaries ORDER BY created_at DESC`
	if err := r.db.ReadOnly.SelectContext(ctx, &documents, stmt); err != nil {
		return nil, errors.Wrap(err, "list summaries")
	}

	summaries := make([]models.Summary, 0, len(documents))
	for _, document := range documents {
		var summary models.Summary
		if err := json.Unmarshal([]byte(document), &summary); err != nil {
			return nil, errors.Wrap(err, "unmarshal summary document")
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

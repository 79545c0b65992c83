package repositories

import (
	"context"
	"log/slog"

	"github.com/myrjola/interrogation-room/internal/errors"
	"github.com/myrjola/interrogation-room/internal/sqlite"
)

// KeywordRepository stores the seed words mixed into summary generation
// prompts to keep generated incidents varied.
type KeywordRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewKeywordRepository(db *sqlite.Database, logger *slog.Logger) *KeywordRepository {
	return &KeywordRepository{
		db:     db,
		logger: logger.With("source", "KeywordRepository"),
	}
}

// Add inserts keywords, ignoring duplicates.
func (r *KeywordRepository) Add(ctx context.Context, words ...string) error {
	stmt := `INSERT INTO keywords (word) VALUES (?) ON CONFLICT (word) DO NOTHING`
	for _, word := range words {
		if _, err := r.db.ReadWrite.ExecContext(ctx, stmt, word); err != nil {
			return errors.Wrap(err, "insert keyword", slog.String("word", word))
		}
	}
	return nil
}

// Random picks up to n distinct keywords. Fewer are returned when the table
// holds fewer than n words.
func (r *KeywordRepository) Random(ctx context.Context, n int) ([]string, error) {
	var words []string
	stmt := `SELECT word FROM keywords ORDER BY RANDOM() LIMIT ?`
	if err := r.db.ReadOnly.SelectContext(ctx, &words, stmt, n); err != nil {
		return nil, errors.Wrap(err, "pick random keywords")
	}
	return words, nil
}

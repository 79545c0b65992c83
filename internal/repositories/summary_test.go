package repositories_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/myrjola/interrogation-room/internal/models"
	"github.com/myrjola/interrogation-room/internal/repositories"
	"github.com/myrjola/interrogation-room/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestSummaryRepository(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := repositories.NewSummaryRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	got, err := repo.GetByID(ctx, "S1")
	require.NoError(t, err)
	require.Equal(t, "The Harbour Warehouse Fire", got.SummaryName)
	require.Len(t, got.Statements, 1)
	require.Equal(t, "E. Vance", got.Statements[0].Name)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, repositories.ErrSummaryNotFound)

	summary := models.Summary{
		SummaryID:      "S3",
		SummaryName:    "The Midnight Caller",
		DateOfIncident: "2025-03-01",
		Overview:       "A threatening phone call preceded a break-in.",
	}
	require.NoError(t, repo.Create(ctx, summary, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)))

	roundTripped, err := repo.GetByID(ctx, "S3")
	require.NoError(t, err)
	require.Equal(t, summary, *roundTripped)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "S3", all[0].SummaryID, "newest summary is listed first")
}

func TestKeywordRepository(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := repositories.NewKeywordRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	words, err := repo.Random(ctx, 3)
	require.NoError(t, err)
	require.Len(t, words, 3)
	seen := map[string]bool{}
	for _, word := range words {
		require.False(t, seen[word], "keywords must be distinct")
		seen[word] = true
	}

	// Duplicates are ignored, new words are added.
	require.NoError(t, repo.Add(ctx, "lighthouse", "smuggling"))

	all, err := repo.Random(ctx, 100)
	require.NoError(t, err)
	require.Len(t, all, 5)
}

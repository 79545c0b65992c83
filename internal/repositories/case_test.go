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

func TestCaseRepository_Create(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := repositories.NewCaseRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()
	now := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, "S2", "U1", now)
	require.NoError(t, err)
	require.Equal(t, "S2_U1", created.CaseID)
	require.Equal(t, models.CaseStatusInProgress, created.Status)
	require.Empty(t, created.SuspectLog)
	require.Empty(t, created.AssistantLog)
	require.Equal(t, models.TokenUsage{}, created.CumulativeTokenUsage)

	// Creating again for the same pair is idempotent.
	again, err := repo.Create(ctx, "S2", "U1", now.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, created.CaseID, again.CaseID)

	cases, err := repo.GetByUserID(ctx, "U1")
	require.NoError(t, err)

	var matching int
	for _, c := range cases {
		if c.CaseID == "S2_U1" {
			matching++
		}
	}
	require.Equal(t, 1, matching, "repeated create must not duplicate the case")
}

func TestCaseRepository_GetByIDAndUser(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := repositories.NewCaseRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	tests := []struct {
		name    string
		caseID  string
		userID  string
		wantErr bool
	}{
		{
			name:   "owner reads case",
			caseID: "S1_U1",
			userID: "U1",
		},
		{
			name:    "unknown case",
			caseID:  "missing",
			userID:  "U1",
			wantErr: true,
		},
		{
			name:    "wrong owner",
			caseID:  "S1_U1",
			userID:  "U2",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByIDAndUser(ctx, tt.caseID, tt.userID)

			if tt.wantErr {
				require.ErrorIs(t, err, repositories.ErrCaseNotFound)
				require.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.Equal(t, "S1", got.SummaryID)
			require.Len(t, got.SuspectLog, 2)
			require.Len(t, got.AssistantLog, 1)
			require.Equal(t, models.RoleUser, got.SuspectLog[0].Role)
			require.Equal(t, "Where were you last night?", got.SuspectLog[0].Message)
			require.Nil(t, got.SuspectLog[0].TokenUsage, "user entries carry no token usage")
			require.Equal(t, models.RoleModel, got.SuspectLog[1].Role)
			require.NotNil(t, got.SuspectLog[1].TokenUsage)
			require.Equal(t, 38, got.SuspectLog[1].TokenUsage.TotalTokens)
			require.Equal(t, 38, got.CumulativeTokenUsage.TotalTokens)
		})
	}
}

func TestCaseRepository_GetBySummaryAndUser(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := repositories.NewCaseRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	got, err := repo.GetBySummaryAndUser(ctx, "S1", "U1")
	require.NoError(t, err)
	require.Equal(t, "S1_U1", got.CaseID)

	_, err = repo.GetBySummaryAndUser(ctx, "S1", "U2")
	require.ErrorIs(t, err, repositories.ErrCaseNotFound)
}

func TestCaseRepository_AppendLog(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := repositories.NewCaseRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	userEntry, err := models.NewLogEntry(models.RoleUser, "Did you know the guard?", now, nil)
	require.NoError(t, err)
	require.NoError(t, repo.AppendLog(ctx, "S1_U1", "U1", models.ThreadSuspect, userEntry))

	usage := models.NewTokenUsage(50, 12)
	modelEntry, err := models.NewLogEntry(models.RoleModel, "Only in passing.", now.Add(2*time.Second), &usage)
	require.NoError(t, err)
	require.NoError(t, repo.AppendLog(ctx, "S1_U1", "U1", models.ThreadSuspect, modelEntry))

	got, err := repo.GetByIDAndUser(ctx, "S1_U1", "U1")
	require.NoError(t, err)
	require.Len(t, got.SuspectLog, 4, "entries are appended, never replaced")
	require.Equal(t, "Did you know the guard?", got.SuspectLog[2].Message)
	require.Equal(t, "Only in passing.", got.SuspectLog[3].Message)
	require.Len(t, got.AssistantLog, 1, "appending to suspect leaves the assistant thread untouched")

	// Cumulative counters pick up the model entry's usage: 38 + 62.
	require.Equal(t, 100, got.CumulativeTokenUsage.TotalTokens)
	require.Equal(t, 80, got.CumulativeTokenUsage.InputTokens)
	require.Equal(t, 20, got.CumulativeTokenUsage.OutputTokens)
}

func TestCaseRepository_AppendLogUnknownCase(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := repositories.NewCaseRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	entry, err := models.NewLogEntry(models.RoleUser, "hello", time.Now(), nil)
	require.NoError(t, err)

	err = repo.AppendLog(ctx, "missing", "U1", models.ThreadSuspect, entry)
	require.ErrorIs(t, err, repositories.ErrCaseNotFound)

	// Appending as the wrong user must not touch the case either.
	err = repo.AppendLog(ctx, "S1_U1", "U2", models.ThreadSuspect, entry)
	require.ErrorIs(t, err, repositories.ErrCaseNotFound)

	got, err := repo.GetByIDAndUser(ctx, "S1_U1", "U1")
	require.NoError(t, err)
	require.Len(t, got.SuspectLog, 2)
}

func TestCaseRepository_UpdateStatus(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := repositories.NewCaseRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()
	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.UpdateStatus(ctx, "S1_U1", "U1", models.CaseStatusConfessed, now))

	got, err := repo.GetByIDAndUser(ctx, "S1_U1", "U1")
	require.NoError(t, err)
	require.Equal(t, models.CaseStatusConfessed, got.Status)

	err = repo.UpdateStatus(ctx, "S1_U1", "U2", models.CaseStatusFailed, now)
	require.ErrorIs(t, err, repositories.ErrCaseNotFound)
}

func TestCaseRepository_Delete(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := repositories.NewCaseRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	// A different user cannot delete the case, and the case stays untouched.
	err := repo.Delete(ctx, "S1_U1", "U2")
	require.ErrorIs(t, err, repositories.ErrCaseNotFound)

	got, err := repo.GetByIDAndUser(ctx, "S1_U1", "U1")
	require.NoError(t, err)
	require.Len(t, got.SuspectLog, 2)

	// The owner removes the case and both logs go with it.
	require.NoError(t, repo.Delete(ctx, "S1_U1", "U1"))

	_, err = repo.GetByIDAndUser(ctx, "S1_U1", "U1")
	require.ErrorIs(t, err, repositories.ErrCaseNotFound)

	var logCount int
	require.NoError(t, db.ReadOnly.Get(&logCount, `SELECT COUNT(*) FROM case_logs WHERE case_id = 'S1_U1'`))
	require.Zero(t, logCount, "deleting the case removes its transcripts")
}

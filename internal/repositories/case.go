package repositories

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/myrjola/interrogation-room/internal/errors"
	"github.com/myrjola/interrogation-room/internal/models"
	"github.com/myrjola/interrogation-room/internal/sqlite"
)

// ErrCaseNotFound is returned when a case does not exist or is not owned by
// the requesting user. The two situations are deliberately indistinguishable
// so that case ids don't leak across users.
var ErrCaseNotFound = errors.NewSentinel("case not found")

type CaseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewCaseRepository(db *sqlite.Database, logger *slog.Logger) *CaseRepository {
	return &CaseRepository{
		db:     db,
		logger: logger.With("source", "CaseRepository"),
	}
}

type caseRow struct {
	CaseID       string    `db:"case_id"`
	UserID       string    `db:"user_id"`
	SummaryID    string    `db:"summary_id"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	LastUpdated  time.Time `db:"last_updated"`
	InputTokens  int       `db:"input_tokens"`
	OutputTokens int       `db:"output_tokens"`
	TotalTokens  int       `db:"total_tokens"`
}

type logRow struct {
	Thread       string        `db:"thread"`
	Role         string        `db:"role"`
	Message      string        `db:"message"`
	CreatedAt    time.Time     `db:"created_at"`
	InputTokens  sql.NullInt64 `db:"input_tokens"`
	OutputTokens sql.NullInt64 `db:"output_tokens"`
	TotalTokens  sql.NullInt64 `db:"total_tokens"`
}

func (row caseRow) toCase() models.Case {
	return models.Case{
		CaseID:      row.CaseID,
		UserID:      row.UserID,
		SummaryID:   row.SummaryID,
		Status:      models.CaseStatus(row.Status),
		CreatedAt:   row.CreatedAt,
		LastUpdated: row.LastUpdated,
		CumulativeTokenUsage: models.TokenUsage{
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			TotalTokens:  row.TotalTokens,
		},
		SuspectLog:   []models.LogEntry{},
		AssistantLog: []models.LogEntry{},
	}
}

func (row logRow) toEntry() models.LogEntry {
	entry := models.LogEntry{
		Role:      models.Role(row.Role),
		Message:   row.Message,
		CreatedAt: row.CreatedAt,
	}
	if row.TotalTokens.Valid {
		entry.TokenUsage = &models.TokenUsage{
			InputTokens:  int(row.InputTokens.Int64),
			OutputTokens: int(row.OutputTokens.Int64),
			TotalTokens:  int(row.TotalTokens.Int64),
		}
	}
	return entry
}

// Create inserts a case for the given summary and user pair. The case id is
// deterministic, so creating the same pair twice returns the already existing
// case instead of a duplicate.
func (r *CaseRepository) Create(ctx context.Context, summaryID, userID string, now time.Time) (*models.Case, error) {
	caseID := models.CaseID(summaryID, userID)

	stmt := `INSERT INTO cases (case_id, user_id, summary_id, status, created_at, last_updated)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (case_id) DO NOTHING`
	if _, err := r.db.ReadWrite.ExecContext(ctx, stmt,
		caseID, userID, summaryID, models.CaseStatusInProgress, now, now); err != nil {
		return nil, errors.Wrap(err, "insert case", slog.String("case_id", caseID))
	}

	return r.GetByIDAndUser(ctx, caseID, userID)
}

// GetByIDAndUser fetches a case with both of its logs. Returns
// ErrCaseNotFound when the case is absent or owned by someone else.
func (r *CaseRepository) GetByIDAndUser(ctx context.Context, caseID, userID string) (*models.Case, error) {
	var row caseRow
	stmt := `SELECT case_id, user_id, summary_id, status, created_at, last_updated,
       input_tokens, output_tokens, total_tokens
FROM cases
WHERE case_id = ? AND user_id = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &row, stmt, caseID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrCaseNotFound, "get case", slog.String("case_id", caseID))
		}
		return nil, errors.Wrap(err, "read case", slog.String("case_id", caseID))
	}

	c := row.toCase()
	if err := r.loadLogs(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByUserID lists the user's cases, newest first, without transcripts.
func (r *CaseRepository) GetByUserID(ctx context.Context, userID string) ([]models.Case, error) {
	var rows []caseRow
	stmt := `SELECT case_id, user_id, summary_id, status, created_at, last_updated,
       input_tokens, output_tokens, total_tokens
FROM cases
WHERE user_id = ?
ORDER BY created_at DESC`
	if err := r.db.ReadOnly.SelectContext(ctx, &rows, stmt, userID); err != nil {
		return nil, errors.Wrap(err, "list cases", slog.String("user_id", userID))
	}

	cases := make([]models.Case, len(rows))
	for i, row := range rows {
		cases[i] = row.toCase()
	}
	return cases, nil
}

// GetBySummaryAndUser fetches the user's case for the given summary.
func (r *CaseRepository) GetBySummaryAndUser(ctx context.Context, summaryID, userID string) (*models.Case, error) {
	return r.GetByIDAndUser(ctx, models.CaseID(summaryID, userID), userID)
}

// AppendLog appends one entry to the given thread's transcript. Appending is
// the only log mutation: entries are never edited, reordered, or removed.
// Entries carrying token usage also bump the case's cumulative counters.
// Returns ErrCaseNotFound when the case is absent or owned by someone else.
func (r *CaseRepository) AppendLog(
	ctx context.Context,
	caseID string,
	userID string,
	thread models.Thread,
	entry models.LogEntry,
) error {
	tx, err := r.db.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin append transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var inputTokens, outputTokens, totalTokens sql.NullInt64
	if entry.TokenUsage != nil {
		inputTokens = sql.NullInt64{Int64: int64(entry.TokenUsage.InputTokens), Valid: true}
		outputTokens = sql.NullInt64{Int64: int64(entry.TokenUsage.OutputTokens), Valid: true}
		totalTokens = sql.NullInt64{Int64: int64(entry.TokenUsage.TotalTokens), Valid: true}
	}

	stmt := `INSERT INTO case_logs (case_id, thread, role, message, created_at, input_tokens, output_tokens, total_tokens)
SELECT case_id, ?, ?, ?, ?, ?, ?, ?
FROM cases
WHERE case_id = ? AND user_id = ?`
	result, err := tx.ExecContext(ctx, stmt,
		thread, entry.Role, entry.Message, entry.CreatedAt,
		inputTokens, outputTokens, totalTokens,
		caseID, userID)
	if err != nil {
		return errors.Wrap(err, "insert log entry", slog.String("case_id", caseID))
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if inserted == 0 {
		return errors.Wrap(ErrCaseNotFound, "append log", slog.String("case_id", caseID))
	}

	stmt = `UPDATE cases
SET last_updated  = ?,
    input_tokens  = input_tokens + ?,
    output_tokens = output_tokens + ?,
    total_tokens  = total_tokens + ?
WHERE case_id = ?`
	usage := models.TokenUsage{}
	if entry.TokenUsage != nil {
		usage = *entry.TokenUsage
	}
	if _, err = tx.ExecContext(ctx, stmt,
		entry.CreatedAt, usage.InputTokens, usage.OutputTokens, usage.TotalTokens, caseID); err != nil {
		return errors.Wrap(err, "update case counters", slog.String("case_id", caseID))
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit append transaction")
	}
	return nil
}

// UpdateStatus transitions the case status for the owning user.
func (r *CaseRepository) UpdateStatus(
	ctx context.Context,
	caseID string,
	userID string,
	status models.CaseStatus,
	now time.Time,
) error {
	stmt := `UPDATE cases SET status = ?, last_updated = ? WHERE case_id = ? AND user_id = ?`
	result, err := r.db.ReadWrite.ExecContext(ctx, stmt, status, now, caseID, userID)
	if err != nil {
		return errors.Wrap(err, "update status", slog.String("case_id", caseID))
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if updated == 0 {
		return errors.Wrap(ErrCaseNotFound, "update status", slog.String("case_id", caseID))
	}
	return nil
}

// Delete removes the case and both of its logs atomically. Only the owning
// user may delete a case.
func (r *CaseRepository) Delete(ctx context.Context, caseID, userID string) error {
	stmt := `DELETE FROM cases WHERE case_id = ? AND user_id = ?`
	result, err := r.db.ReadWrite.ExecContext(ctx, stmt, caseID, userID)
	if err != nil {
		return errors.Wrap(err, "delete case", slog.String("case_id", caseID))
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if deleted == 0 {
		return errors.Wrap(ErrCaseNotFound, "delete case", slog.String("case_id", caseID))
	}
	return nil
}

func (r *CaseRepository) loadLogs(ctx context.Context, c *models.Case) error {
	var rows []logRow
	stmt := `SELECT thread, role, message, created_at, input_tokens, output_tokens, total_tokens
FROM case_logs
WHERE case_id = ?
ORDER BY id`
	if err := r.db.ReadOnly.SelectContext(ctx, &rows, stmt, c.CaseID); err != nil {
		return errors.Wrap(err, "read case logs", slog.String("case_id", c.CaseID))
	}

	for _, row := range rows {
		entry := row.toEntry()
		switch models.Thread(row.Thread) {
		case models.ThreadAssistant:
			c.AssistantLog = append(c.AssistantLog, entry)
		case models.ThreadSuspect:
			c.SuspectLog = append(c.SuspectLog, entry)
		}
	}
	return nil
}

package interrogation

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/myrjola/interrogation-room/internal/ai"
	"github.com/myrjola/interrogation-room/internal/errors"
	"github.com/myrjola/interrogation-room/internal/models"
	"github.com/myrjola/interrogation-room/internal/prompts"
	"github.com/myrjola/interrogation-room/internal/repositories"
)

// Service orchestrates case lifecycle and chat turns. One instance serves all
// requests; per-(case, thread) turn serialization is internal.
type Service struct {
	cases     *repositories.CaseRepository
	summaries *repositories.SummaryRepository
	engine    ai.Engine
	logger    *slog.Logger
	turnLocks keyedMutex
}

func NewService(
	cases *repositories.CaseRepository,
	summaries *repositories.SummaryRepository,
	engine ai.Engine,
	logger *slog.Logger,
) *Service {
	return &Service{
		cases:     cases,
		summaries: summaries,
		engine:    engine,
		logger:    logger.With("source", "interrogation.Service"),
	}
}

// CreateCase opens an interrogation for the given summary. The case id is
// deterministic for a (summary, user) pair, so repeated calls return the
// existing case instead of creating a duplicate.
func (s *Service) CreateCase(ctx context.Context, summaryID, userID string) (*models.Case, error) {
	if _, err := s.summaries.GetByID(ctx, summaryID); err != nil {
		return nil, err
	}
	return s.cases.Create(ctx, summaryID, userID, time.Now().UTC())
}

// ListCases returns the user's cases without transcripts.
func (s *Service) ListCases(ctx context.Context, userID string) ([]models.Case, error) {
	return s.cases.GetByUserID(ctx, userID)
}

// GetCase returns one of the user's cases with both transcripts.
func (s *Service) GetCase(ctx context.Context, caseID, userID string) (*models.Case, error) {
	return s.cases.GetByIDAndUser(ctx, caseID, userID)
}

// GetCaseBySummary returns the user's case for the given summary.
func (s *Service) GetCaseBySummary(ctx context.Context, summaryID, userID string) (*models.Case, error) {
	return s.cases.GetBySummaryAndUser(ctx, summaryID, userID)
}

// DeleteCase removes one of the user's cases together with both transcripts.
func (s *Service) DeleteCase(ctx context.Context, caseID, userID string) error {
	return s.cases.Delete(ctx, caseID, userID)
}

// CloseCase records the outcome of one of the user's cases, i.e. whether the
// suspect confessed or the interrogation failed. Reopening a closed case by
// transitioning back to in_progress is allowed.
func (s *Service) CloseCase(ctx context.Context, caseID, userID string, status models.CaseStatus) error {
	if !status.Valid() {
		return errors.Wrap(models.ErrInvalidStatus, "close case", slog.String("status", string(status)))
	}
	return s.cases.UpdateStatus(ctx, caseID, userID, status, time.Now().UTC())
}

// Chat runs one turn on the given thread and returns the model's reply as a
// lazy chunk sequence.
//
// The turn holds the (case, thread) lock until the sequence is drained:
// concurrent turns on the same thread serialize rather than interleave their
// appends, while the other thread of the same case stays unaffected. Within
// the turn the ordering is fixed: the user entry is appended first, then the
// context is rebuilt from the full persisted log, then the completion is
// streamed, and only a normally completed stream appends the model entry.
// When the generation fails or the caller abandons the stream, the user entry
// stays in the log without a reply; the next turn replays it as context.
func (s *Service) Chat(
	ctx context.Context,
	caseID string,
	userID string,
	thread models.Thread,
	message string,
) (iter.Seq2[string, error], error) {
	// Authorize before taking the turn lock so that probes for foreign cases
	// don't contend on it.
	if _, err := s.cases.GetByIDAndUser(ctx, caseID, userID); err != nil {
		return nil, err
	}

	unlock := s.turnLocks.lock(turnKey{caseID: caseID, thread: thread})

	stream, err := s.startTurn(ctx, caseID, userID, thread, message)
	if err != nil {
		unlock()
		return nil, err
	}

	return func(yield func(string, error) bool) {
		defer unlock()
		stream(yield)
	}, nil
}

func (s *Service) startTurn(
	ctx context.Context,
	caseID string,
	userID string,
	thread models.Thread,
	message string,
) (iter.Seq2[string, error], error) {
	userEntry, err := models.NewLogEntry(models.RoleUser, message, time.Now().UTC(), nil)
	if err != nil {
		return nil, err
	}
	if err = s.cases.AppendLog(ctx, caseID, userID, thread, userEntry); err != nil {
		return nil, err
	}

	// Re-fetch so the context includes the entry appended above.
	c, err := s.cases.GetByIDAndUser(ctx, caseID, userID)
	if err != nil {
		return nil, err
	}
	summary, err := s.summaries.GetByID(ctx, c.SummaryID)
	if err != nil {
		return nil, err
	}

	systemPrompt, err := s.systemPrompt(thread, summary)
	if err != nil {
		return nil, err
	}
	blocks, err := ai.BuildContext(nil, c.Log(thread), "")
	if err != nil {
		return nil, err
	}

	onComplete := func(fullText string, usage models.TokenUsage) error {
		modelEntry, entryErr := models.NewLogEntry(models.RoleModel, fullText, time.Now().UTC(), &usage)
		if entryErr != nil {
			return errors.Wrap(entryErr, "model reply entry", slog.String("case_id", caseID))
		}
		return s.cases.AppendLog(ctx, caseID, userID, thread, modelEntry)
	}

	return ai.StreamCompletion(ctx, s.engine, systemPrompt, blocks, onComplete)
}

// systemPrompt selects the thread's fixed prompt and grounds it with the
// serialized case summary.
func (s *Service) systemPrompt(thread models.Thread, summary *models.Summary) (string, error) {
	name := prompts.Suspect
	if thread == models.ThreadAssistant {
		name = prompts.Assistant
	}
	prompt, err := prompts.Get(name)
	if err != nil {
		return "", err
	}
	serialized, err := summary.JSON()
	if err != nil {
		return "", err
	}
	return prompt + "\n\nThe case summary follows.\n" + serialized, nil
}

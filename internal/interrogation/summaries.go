package interrogation

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/interrogation-room/internal/ai"
	"github.com/myrjola/interrogation-room/internal/errors"
	"github.com/myrjola/interrogation-room/internal/models"
	"github.com/myrjola/interrogation-room/internal/prompts"
	"github.com/myrjola/interrogation-room/internal/repositories"
	"github.com/myrjola/interrogation-room/internal/textutil"
)

// ErrInvalidSummary is returned when the engine's output cannot be parsed
// into an incident summary.
var ErrInvalidSummary = errors.NewSentinel("generated summary is invalid")

// summaryKeywordCount is how many seed words flavour each generated incident.
const summaryKeywordCount = 3

// SummaryService generates and serves incident summaries. Generation is the
// only write path; once stored a summary never changes.
type SummaryService struct {
	summaries *repositories.SummaryRepository
	keywords  *repositories.KeywordRepository
	engine    ai.Engine
	logger    *slog.Logger
}

func NewSummaryService(
	summaries *repositories.SummaryRepository,
	keywords *repositories.KeywordRepository,
	engine ai.Engine,
	logger *slog.Logger,
) *SummaryService {
	return &SummaryService{
		summaries: summaries,
		keywords:  keywords,
		engine:    engine,
		logger:    logger.With("source", "interrogation.SummaryService"),
	}
}

// Generate creates one new incident summary from randomly picked keywords and
// persists it under a fresh id.
func (s *SummaryService) Generate(ctx context.Context) (*models.Summary, error) {
	systemPrompt, err := prompts.Get(prompts.SummaryGenerator)
	if err != nil {
		return nil, err
	}
	words, err := s.keywords.Random(ctx, summaryKeywordCount)
	if err != nil {
		return nil, err
	}

	blocks := []ai.ContentBlock{{
		Role: models.RoleModel,
		Text: "Generate the incident summary now. Keywords: " + strings.Join(words, ", "),
	}}
	raw, err := s.engine.Complete(ctx, systemPrompt, blocks)
	if err != nil {
		return nil, errors.Wrap(errors.Join(ai.ErrCompletionEngine, err), "generate summary")
	}

	var summary models.Summary
	if err = json.Unmarshal([]byte(textutil.ExtractJSONBlock(raw)), &summary); err != nil {
		return nil, errors.Wrap(errors.Join(ErrInvalidSummary, err), "parse generated summary")
	}
	if summary.SummaryName == "" {
		return nil, errors.Wrap(ErrInvalidSummary, "generated summary has no name")
	}

	summary.SummaryID = uuid.New().String()
	if err = s.summaries.Create(ctx, summary, time.Now().UTC()); err != nil {
		return nil, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated summary",
		slog.String("summary_id", summary.SummaryID),
		slog.String("summary_name", summary.SummaryName))
	return &summary, nil
}

// Get returns one summary by id.
func (s *SummaryService) Get(ctx context.Context, summaryID string) (*models.Summary, error) {
	return s.summaries.GetByID(ctx, summaryID)
}

// List returns every summary, newest first.
func (s *SummaryService) List(ctx context.Context) ([]models.Summary, error) {
	return s.summaries.GetAll(ctx)
}

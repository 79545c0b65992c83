package interrogation_test

import (
	_ "embed"
	"io"
	"testing"

	"github.com/myrjola/interrogation-room/internal/ai"
	"github.com/myrjola/interrogation-room/internal/interrogation"
	"github.com/myrjola/interrogation-room/internal/repositories"
	"github.com/myrjola/interrogation-room/internal/sqlite"
	"github.com/myrjola/interrogation-room/internal/testhelpers"
)

//go:embed testdata/fixtures.sql
var testFixtures string

type testEnv struct {
	db        *sqlite.Database
	cases     *repositories.CaseRepository
	summaries *repositories.SummaryRepository
	keywords  *repositories.KeywordRepository
	engine    *testhelpers.FakeEngine
	service   *interrogation.Service
}

// newTestEnv wires a Service against an in-memory database seeded with one
// summary "S1" and one case "S1_U1" owned by "U1".
func newTestEnv(t *testing.T, engine *testhelpers.FakeEngine) testEnv {
	t.Helper()

	db, err := sqlite.NewDatabase(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = db.ReadWrite.Exec(testFixtures); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatal(err)
		}
	})

	logger := testhelpers.NewLogger(io.Discard)
	cases := repositories.NewCaseRepository(db, logger)
	summaries := repositories.NewSummaryRepository(db, logger)
	keywords := repositories.NewKeywordRepository(db, logger)

	return testEnv{
		db:        db,
		cases:     cases,
		summaries: summaries,
		keywords:  keywords,
		engine:    engine,
		service:   interrogation.NewService(cases, summaries, engine, logger),
	}
}

// drain consumes the chunk sequence and returns the concatenated text and the
// last error yielded, if any.
func drain(seq func(func(string, error) bool)) (string, error) {
	var (
		text    string
		lastErr error
	)
	seq(func(chunk string, err error) bool {
		text += chunk
		if err != nil {
			lastErr = err
		}
		return true
	})
	return text, lastErr
}

func textChunks(texts ...string) []ai.Chunk {
	chunks := make([]ai.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = ai.Chunk{Text: text}
	}
	return chunks
}

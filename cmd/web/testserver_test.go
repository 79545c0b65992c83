package main

import (
	_ "embed"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/myrjola/interrogation-room/internal/auth"
	"github.com/myrjola/interrogation-room/internal/interrogation"
	"github.com/myrjola/interrogation-room/internal/logging"
	"github.com/myrjola/interrogation-room/internal/repositories"
	"github.com/myrjola/interrogation-room/internal/sqlite"
	"github.com/myrjola/interrogation-room/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/fixtures.sql
var testFixtures string

type testServer struct {
	*httptest.Server
	authenticator *auth.JWTAuthenticator
}

// startTestServer serves the real routes over an in-memory database seeded
// with one summary "S1" and one case "S1_U1" owned by "U1".
func startTestServer(t *testing.T, engine *testhelpers.FakeEngine) testServer {
	t.Helper()

	db, err := sqlite.NewDatabase(":memory:")
	require.NoError(t, err)
	_, err = db.ReadWrite.Exec(testFixtures)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(io.Discard, nil)))
	cases := repositories.NewCaseRepository(db, logger)
	summaries := repositories.NewSummaryRepository(db, logger)
	keywords := repositories.NewKeywordRepository(db, logger)
	authenticator := auth.NewJWTAuthenticator("test-secret", "interrogation-room", time.Hour)

	app := application{
		logger:         logger,
		interrogations: interrogation.NewService(cases, summaries, engine, logger),
		summaries:      interrogation.NewSummaryService(summaries, keywords, engine, logger),
		authenticator:  authenticator,
	}

	srv := httptest.NewServer(app.routes())
	t.Cleanup(srv.Close)
	return testServer{Server: srv, authenticator: authenticator}
}

// request performs an HTTP request against the test server. A non-empty
// userID is turned into a bearer token for that user.
func (ts testServer) request(t *testing.T, method, path, userID, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if userID != "" {
		token, err := ts.authenticator.Mint(userID, time.Now())
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

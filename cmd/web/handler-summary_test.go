package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/myrjola/interrogation-room/internal/models"
	"github.com/myrjola/interrogation-room/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestGenerateSummary(t *testing.T) {
	t.Parallel()
	engine := &testhelpers.FakeEngine{
		CompleteText: "```json\n" +
			`{"summaryName":"The Midnight Caller","overview":"A threatening call preceded the break-in."}` +
			"\n```",
	}
	ts := startTestServer(t, engine)

	// Generation needs no token.
	resp := ts.request(t, http.MethodPost, "/api/summaries/generate", "", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var generated models.Summary
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &generated))
	require.NotEmpty(t, generated.SummaryID)
	require.Equal(t, "The Midnight Caller", generated.SummaryName)

	resp = ts.request(t, http.MethodGet, "/api/summaries/"+generated.SummaryID, "U1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerateSummaryBadEngineOutput(t *testing.T) {
	t.Parallel()
	engine := &testhelpers.FakeEngine{CompleteText: "no json here"}
	ts := startTestServer(t, engine)

	resp := ts.request(t, http.MethodPost, "/api/summaries/generate", "", "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestListSummaries(t *testing.T) {
	t.Parallel()
	ts := startTestServer(t, &testhelpers.FakeEngine{})

	resp := ts.request(t, http.MethodGet, "/api/summaries", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ts.request(t, http.MethodGet, "/api/summaries", "U1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summaries []models.Summary
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &summaries))
	require.Len(t, summaries, 1)
	require.Equal(t, "The Harbour Warehouse Fire", summaries[0].SummaryName)

	resp = ts.request(t, http.MethodGet, "/api/summaries/missing", "U1", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.JSONEq(t, `{"detail":"Summary not found"}`, readBody(t, resp))
}

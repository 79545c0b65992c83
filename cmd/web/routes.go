package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	authenticated := alice.New(app.authenticate)

	mux.Handle("POST /api/cases", authenticated.ThenFunc(app.createCase))
	mux.Handle("GET /api/cases", authenticated.ThenFunc(app.listCases))
	mux.Handle("GET /api/cases/{caseID}", authenticated.ThenFunc(app.getCase))
	mux.Handle("DELETE /api/cases/{caseID}", authenticated.ThenFunc(app.deleteCase))
	mux.Handle("PATCH /api/cases/{caseID}/status", authenticated.ThenFunc(app.updateCaseStatus))
	mux.Handle("GET /api/cases/summary/{summaryID}", authenticated.ThenFunc(app.getCaseBySummary))
	mux.Handle("POST /api/cases/{caseID}/chat", authenticated.ThenFunc(app.chatSuspect))
	mux.Handle("POST /api/cases/{caseID}/chat/assistant", authenticated.ThenFunc(app.chatAssistant))

	mux.Handle("GET /api/summaries", authenticated.ThenFunc(app.listSummaries))
	mux.Handle("GET /api/summaries/{summaryID}", authenticated.ThenFunc(app.getSummary))
	// Generation is triggered by a scheduled job, not a signed-in player.
	mux.HandleFunc("POST /api/summaries/generate", app.generateSummary)

	mux.HandleFunc("GET /api/healthy", app.healthy)

	return app.recoverPanic(app.logRequest(commonHeaders(mux)))
}

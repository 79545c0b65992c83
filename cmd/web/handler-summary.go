package main

import (
	"log/slog"
	"net/http"

	"github.com/myrjola/interrogation-room/internal/errors"
)

func (app *application) generateSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := app.summaries.Generate(r.Context())
	if err != nil {
		app.apiError(w, r, errors.Wrap(err, "generate summary"))
		return
	}
	app.writeJSON(w, r, http.StatusCreated, summary)
}

func (app *application) listSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := app.summaries.List(r.Context())
	if err != nil {
		app.apiError(w, r, errors.Wrap(err, "list summaries"))
		return
	}
	app.writeJSON(w, r, http.StatusOK, summaries)
}

func (app *application) getSummary(w http.ResponseWriter, r *http.Request) {
	summaryID := r.PathValue("summaryID")
	summary, err := app.summaries.Get(r.Context(), summaryID)
	if err != nil {
		app.apiError(w, r, errors.Wrap(err, "get summary", slog.String("summary_id", summaryID)))
		return
	}
	app.writeJSON(w, r, http.StatusOK, summary)
}

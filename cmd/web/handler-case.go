package main

import (
	"log/slog"
	"net/http"

	"github.com/myrjola/interrogation-room/internal/errors"
	"github.com/myrjola/interrogation-room/internal/models"
)

type createCaseRequest struct {
	SummaryID string `json:"summaryId"`
}

func (app *application) createCase(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}
	if req.SummaryID == "" {
		app.clientError(w, r, http.StatusBadRequest, "summaryId is required")
		return
	}

	userID := authenticatedUserID(r.Context())
	c, err := app.interrogations.CreateCase(r.Context(), req.SummaryID, userID)
	if err != nil {
		app.apiError(w, r, errors.Wrap(err, "create case", slog.String("summary_id", req.SummaryID)))
		return
	}
	app.writeJSON(w, r, http.StatusCreated, c)
}

func (app *application) listCases(w http.ResponseWriter, r *http.Request) {
	userID := authenticatedUserID(r.Context())
	cases, err := app.interrogations.ListCases(r.Context(), userID)
	if err != nil {
		app.apiError(w, r, errors.Wrap(err, "list cases"))
		return
	}
	app.writeJSON(w, r, http.StatusOK, cases)
}

func (app *application) getCase(w http.ResponseWriter, r *http.Request) {
	userID := authenticatedUserID(r.Context())
	caseID := r.PathValue("caseID")
	c, err := app.interrogations.GetCase(r.Context(), caseID, userID)
	if err != nil {
		app.apiError(w, r, errors.Wrap(err, "get case", slog.String("case_id", caseID)))
		return
	}
	app.writeJSON(w, r, http.StatusOK, c)
}

func (app *application) getCaseBySummary(w http.ResponseWriter, r *http.Request) {
	userID := authenticatedUserID(r.Context())
	summaryID := r.PathValue("summaryID")
	c, err := app.interrogations.GetCaseBySummary(r.Context(), summaryID, userID)
	if err != nil {
		app.apiError(w, r, errors.Wrap(err, "get case by summary", slog.String("summary_id", summaryID)))
		return
	}
	app.writeJSON(w, r, http.StatusOK, c)
}

type updateCaseStatusRequest struct {
	Status models.CaseStatus `json:"status"`
}

func (app *application) updateCaseStatus(w http.ResponseWriter, r *http.Request) {
	var req updateCaseStatusRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}

	userID := authenticatedUserID(r.Context())
	caseID := r.PathValue("caseID")
	if err := app.interrogations.CloseCase(r.Context(), caseID, userID, req.Status); err != nil {
		app.apiError(w, r, errors.Wrap(err, "update case status",
			slog.String("case_id", caseID), slog.String("status", string(req.Status))))
		return
	}
	c, err := app.interrogations.GetCase(r.Context(), caseID, userID)
	if err != nil {
		app.apiError(w, r, errors.Wrap(err, "get updated case", slog.String("case_id", caseID)))
		return
	}
	app.writeJSON(w, r, http.StatusOK, c)
}

func (app *application) deleteCase(w http.ResponseWriter, r *http.Request) {
	userID := authenticatedUserID(r.Context())
	caseID := r.PathValue("caseID")
	if err := app.interrogations.DeleteCase(r.Context(), caseID, userID); err != nil {
		app.apiError(w, r, errors.Wrap(err, "delete case", slog.String("case_id", caseID)))
		return
	}
	app.writeDetail(w, r, http.StatusOK, "Case deleted")
}

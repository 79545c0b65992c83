package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/myrjola/interrogation-room/internal/ai"
	"github.com/myrjola/interrogation-room/internal/errors"
	"github.com/myrjola/interrogation-room/internal/models"
	"github.com/myrjola/interrogation-room/internal/repositories"
)

// writeJSON serialises v with the given status. Encoding failures are logged,
// there's nothing more to do after the status line has been sent.
func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response", errors.SlogError(err))
	}
}

type detailResponse struct {
	Detail string `json:"detail"`
}

func (app *application) writeDetail(w http.ResponseWriter, r *http.Request, status int, detail string) {
	app.writeJSON(w, r, status, detailResponse{Detail: detail})
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	app.writeDetail(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Debug(http.StatusText(status), "method", method, "uri", uri, "detail", detail)
	app.writeDetail(w, r, status, detail)
}

func (app *application) unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelDebug, "unauthorized",
		slog.String("uri", r.URL.RequestURI()), errors.SlogError(err))
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.writeDetail(w, r, http.StatusUnauthorized, "Not authenticated")
}

// apiError maps service errors to their response. Ownership failures read the
// same as missing resources so ids can't be probed.
func (app *application) apiError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyMessage):
		app.clientError(w, r, http.StatusBadRequest, "Message must not be empty")
	case errors.Is(err, models.ErrInvalidStatus):
		app.clientError(w, r, http.StatusBadRequest, "Invalid case status")
	case errors.Is(err, repositories.ErrCaseNotFound):
		app.clientError(w, r, http.StatusNotFound, "Case not found")
	case errors.Is(err, repositories.ErrSummaryNotFound):
		app.clientError(w, r, http.StatusNotFound, "Summary not found")
	case errors.Is(err, ai.ErrCompletionEngine):
		app.logger.LogAttrs(r.Context(), slog.LevelError, "completion engine failure", errors.SlogError(err))
		app.writeDetail(w, r, http.StatusBadGateway, "Completion engine failure")
	default:
		app.serverError(w, r, err)
	}
}

// decodeJSON reads the request body into dst.
func (app *application) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

package main

import (
	"log/slog"
	"net/http"

	"github.com/myrjola/interrogation-room/internal/errors"
	"github.com/myrjola/interrogation-room/internal/models"
)

type chatRequest struct {
	Message string `json:"message"`
}

func (app *application) chatSuspect(w http.ResponseWriter, r *http.Request) {
	app.chat(w, r, models.ThreadSuspect)
}

func (app *application) chatAssistant(w http.ResponseWriter, r *http.Request) {
	app.chat(w, r, models.ThreadAssistant)
}

// chat runs one interrogation turn and streams the reply as plain text.
//
// Errors before the first chunk map to a JSON status response. Once chunks
// have been written the status line is gone, so a mid-stream failure aborts
// the connection without injecting error text into the transcript.
func (app *application) chat(w http.ResponseWriter, r *http.Request, thread models.Thread) {
	var req chatRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	userID := authenticatedUserID(ctx)
	caseID := r.PathValue("caseID")

	chunks, err := app.interrogations.Chat(ctx, caseID, userID, thread, req.Message)
	if err != nil {
		app.apiError(w, r, errors.Wrap(err, "start chat turn",
			slog.String("case_id", caseID), slog.String("thread", string(thread))))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		app.serverError(w, r, errors.New("response writer does not support flushing"))
		return
	}

	// The status line is held back until the first chunk arrives so that a
	// generation failing right away still gets a proper status code.
	wroteChunk := false
	for chunk, streamErr := range chunks {
		if streamErr != nil {
			if !wroteChunk {
				app.apiError(w, r, errors.Wrap(streamErr, "chat stream",
					slog.String("case_id", caseID)))
				return
			}
			app.logger.LogAttrs(ctx, slog.LevelError, "chat stream failed",
				slog.String("case_id", caseID), errors.SlogError(streamErr))
			// Closing the connection is the only way to signal failure now.
			panic(http.ErrAbortHandler)
		}
		if !wroteChunk {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			wroteChunk = true
		}
		if _, writeErr := w.Write([]byte(chunk)); writeErr != nil {
			app.logger.LogAttrs(ctx, slog.LevelDebug, "client went away", errors.SlogError(writeErr))
			return
		}
		flusher.Flush()
	}
	if !wroteChunk {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/myrjola/interrogation-room/internal/auth"
	"github.com/myrjola/interrogation-room/internal/logging"
)

func commonHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			proto  = r.Proto
			method = r.Method
			uri    = r.URL.RequestURI()
		)

		app.logger.Debug("received request", "proto", proto, "method", method, "uri", uri)

		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				// ErrAbortHandler is the sentinel for deliberately torn-down
				// responses, net/http handles it itself.
				if err == http.ErrAbortHandler {
					panic(err)
				}
				w.Header().Set("Connection", "close")
				app.serverError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// authenticate rejects requests without a valid bearer token and stores the
// token's user id in the request context.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.BearerToken(r)
		if err != nil {
			app.unauthorized(w, r, err)
			return
		}
		userID, err := app.authenticator.Verify(token)
		if err != nil {
			app.unauthorized(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), authenticatedUserIDContextKey, userID)
		ctx = logging.WithAttrs(ctx, slog.String("user_id", userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

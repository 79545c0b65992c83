package main

import "context"

type contextKey string

const authenticatedUserIDContextKey = contextKey("authenticatedUserID")

// authenticatedUserID returns the user id set by the authenticate middleware,
// or the empty string when the request carries no valid token.
func authenticatedUserID(ctx context.Context) string {
	userID, _ := ctx.Value(authenticatedUserIDContextKey).(string)
	return userID
}

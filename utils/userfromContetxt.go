package utils

import (
	"net/http"

	"cupcakery/globals"
)

// GetSessionIDFromRequest returns the visitor session set by the session
// middleware, or "" outside of it.
func GetSessionIDFromRequest(r *http.Request) string {
	sessionID, ok := r.Context().Value(globals.SessionIDKey).(string)
	if !ok {
		return ""
	}
	return sessionID
}

package transport

import (
	"net/http"
	"strings"

	"herbanusa-be/internal/logger"

	"github.com/google/uuid"
)

// SessionIDHeader carries the anonymous customer session. Carts and checkout
// flows are keyed by it.
const SessionIDHeader = "X-Session-ID"

const maxSessionIDLen = 128

// Session resolves the customer session id from the request, minting one
// when absent, and echoes it back so the client can keep using it.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := strings.TrimSpace(r.Header.Get(SessionIDHeader))
		if sid == "" || len(sid) > maxSessionIDLen {
			sid = uuid.NewString()
		}

		w.Header().Set(SessionIDHeader, sid)
		next.ServeHTTP(w, r.WithContext(logger.WithSessionID(r.Context(), sid)))
	})
}

// SessionIDFrom returns the session id set by Session, or the raw header
// when the middleware has not run.
func SessionIDFrom(r *http.Request) string {
	if sid := logger.SessionIDFrom(r.Context()); sid != "" {
		return sid
	}
	return strings.TrimSpace(r.Header.Get(SessionIDHeader))
}

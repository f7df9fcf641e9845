package middleware

import (
	"context"
	"net/http"

	"friendbook/internal/common"
	"friendbook/internal/common/security"
	"friendbook/internal/platform/session"
)

type contextKey string

const (
	UsernameCtxKey contextKey = "username"
	PayloadCtxKey  contextKey = "payload"
)

// Authenticator gates the protected routes. A request must present a
// session cookie that maps to a live session whose stored token still
// verifies. No session -> 401, session with a bad or expired token ->
// 403. The gate never mutates session or token state.
func Authenticator(sessions session.Store, tokens *security.TokenService, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "No active session")
				return
			}

			sess, ok, err := sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				common.RespondWithError(w, http.StatusInternalServerError, "Session lookup failed")
				return
			}
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, "No active session")
				return
			}

			identity, err := tokens.Verify(sess.Token)
			if err != nil {
				common.RespondWithError(w, http.StatusForbidden, "Session token is invalid or expired")
				return
			}

			ctx := context.WithValue(r.Context(), UsernameCtxKey, identity.Username)
			ctx = context.WithValue(ctx, PayloadCtxKey, identity.Payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper to get the authenticated username from context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}

// Helper to get the token payload from context
func GetPayloadFromContext(ctx context.Context) (string, bool) {
	payload, ok := ctx.Value(PayloadCtxKey).(string)
	return payload, ok
}

package middleware

import (
	"net/http"

	"herbanusa-be/internal/auth"
	"herbanusa-be/internal/logger"
	"herbanusa-be/internal/utils"

	"go.uber.org/zap"
)

// Auth attaches the token's viewer to the request context. Requests without
// a token pass through as anonymous customers; a token that fails
// verification is rejected.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractAccessToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			viewer, err := auth.ParseViewer(token, secret)
			if err != nil {
				logger.FromCtx(r.Context()).Info("rejected access token", zap.Error(err))
				utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithViewer(r.Context(), viewer)))
		})
	}
}

// RequireRole lets through only viewers holding role. Farmers also need a
// seller id.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := utils.ViewerFrom(r.Context())
			ok := v.Role == role
			if role == utils.RoleFarmer {
				ok = v.IsFarmer()
			}
			if !ok {
				utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/notesync/internal/server/handlers"
)

// tokenQueryParam передаёт токен там, где нельзя выставить заголовок (браузерный WebSocket)
const tokenQueryParam = "access_token"

// AuthMiddleware создает middleware для проверки JWT токена.
// The token is taken from "Authorization: Bearer" or, failing that, from
// the access_token query parameter.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := extractToken(r)
			if !ok {
				logger.Warn("missing or malformed credentials", "path", r.URL.Path)
				unauthorized(w, "missing token")
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, tokenString)
			if err != nil {
				logger.Warn("invalid access token", "error", err)
				unauthorized(w, "invalid token")
				return
			}

			ctx := handlers.WithUser(r.Context(), claims.UserID, claims.UserName)
			logger.Debug("user authenticated", "user_id", claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken достаёт токен из заголовка или query параметра
func extractToken(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		// Ожидаем формат: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if token := r.URL.Query().Get(tokenQueryParam); token != "" {
		return token, true
	}
	return "", false
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="notesync"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","message":"` + msg + `"}`))
}

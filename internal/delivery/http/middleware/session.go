package middleware

import (
	"context"
	"net/http"
	"time"

	"livemenu-backend/pkg/utils"
)

const SessionCookieName = "menu_session"

type sessionKey struct{}

// SessionMiddleware makes sure every request carries a menu session id,
// issuing a new cookie when the client has none.
func SessionMiddleware(ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
				id = c.Value
			} else {
				id = utils.GenerateUUID()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			ctx := context.WithValue(r.Context(), sessionKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKey{}).(string); ok {
		return id
	}
	return ""
}

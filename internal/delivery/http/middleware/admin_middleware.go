package middleware

import (
	"net/http"

	"livemenu-backend/internal/domain"
	"livemenu-backend/pkg/utils"
)

// AdminMiddleware admits staff roles only.
// MUST be used AFTER AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := domain.IdentityFromContext(r.Context())
		if identity == nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No identity found in context")
			return
		}

		if !identity.IsPrivileged() {
			utils.WriteError(w, http.StatusForbidden, "Forbidden: Staff only")
			return
		}

		next.ServeHTTP(w, r)
	})
}

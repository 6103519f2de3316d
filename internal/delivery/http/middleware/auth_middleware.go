package middleware

import (
	"net/http"

	"livemenu-backend/internal/domain"
	"livemenu-backend/pkg/logger"
	"livemenu-backend/pkg/utils"
)

// IdentityMiddleware attaches the staff identity when the request carries a
// valid token. Anonymous requests pass through unchanged.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := utils.ExtractClaims(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		identity := &domain.Identity{
			ID:    claims.StaffID,
			Email: claims.Email,
			Role:  claims.Role,
		}

		ctx := domain.ContextWithIdentity(r.Context(), identity)
		l := logger.WithStaff(*logger.WithContext(ctx), identity.ID, identity.Role)
		ctx = logger.NewContext(ctx, &l)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthMiddleware rejects requests without a valid staff token.
func AuthMiddleware(next http.Handler) http.Handler {
	return IdentityMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if domain.IdentityFromContext(r.Context()) == nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No valid token provided")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

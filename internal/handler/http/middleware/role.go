package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/auth"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/handler/http/response"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
)

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := jwt.PrincipalFromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}

			if !principal.Can(permission) {
				slog.Warn("permission denied",
					"user_id", principal.UserID,
					"role", principal.Role,
					"permission", permission,
				)
				response.Forbidden(w, "Accès refusé: droits insuffisants")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/auth"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/handler/http/response"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

// AccountLookup loads the account a session token was issued for.
type AccountLookup interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// AccountMiddleware checks verified tokens against the stored account.
type AccountMiddleware struct {
	accounts AccountLookup
}

func NewAccountMiddleware(accounts AccountLookup) *AccountMiddleware {
	return &AccountMiddleware{accounts: accounts}
}

// RequireActiveAccount must run after AuthRequired. A deactivated account is
// refused, and a token whose role claim no longer matches the account (role
// changed since login, account deleted) is treated as invalid.
func (m *AccountMiddleware) RequireActiveAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := jwt.PrincipalFromContext(r.Context())
		if err != nil || !validator.IsValidUUID(principal.UserID) {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		account, err := m.accounts.GetByID(r.Context(), principal.UserID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			slog.Error("account lookup failed", "user_id", principal.UserID, "error", err)
			response.HandleError(w, err)
			return
		}

		if !account.Actif {
			response.HandleError(w, auth.ErrAccountInactive)
			return
		}
		if account.Role != principal.Role {
			slog.Info("stale role in token", "user_id", account.ID, "token_role", principal.Role, "role", account.Role)
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}

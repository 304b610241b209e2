package middleware

import (
	"errors"
	"net/http"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/auth"
	"github.com/Traore-oss/SGRH-sub001/internal/handler/http/response"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// TokenFromRequest returns the raw session token from the Authorization
// header, falling back to the jwt cookie.
func TokenFromRequest(r *http.Request) string {
	if token := jwtauth.TokenFromHeader(r); token != "" {
		return token
	}
	return jwtauth.TokenFromCookie(r)
}

// Verifier decodes the session token of every request into the context.
// Requests without a token pass through; AuthRequired rejects them.
func Verifier(jwtService jwt.Service) func(http.Handler) http.Handler {
	return jwtauth.Verify(jwtService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromCookie)
}

func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				if errors.Is(err, jwtauth.ErrNoTokenFound) {
					response.HandleError(w, auth.ErrUnauthenticated)
					return
				}
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(TokenFromRequest(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

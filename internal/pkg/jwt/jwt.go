package jwt

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// CookieName is the HttpOnly cookie carrying the session token.
const CookieName = "jwt"

var ErrMissingClaims = errors.New("token claims missing")

type Service interface {
	GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	AccessTokenCookie(token string, expiresAt int64) *http.Cookie
	ClearCookie() *http.Cookie
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenExpirationTime string
	secureCookie              bool
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]int64
	mu                        sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, secureCookie bool) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		secureCookie:              secureCookie,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"type":    "access",
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) AccessTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// RevokeToken denies a token until its expiry. Expired entries are pruned on
// every call.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now().Unix()
	for t, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// Principal is the authenticated caller extracted from the verified token.
type Principal struct {
	UserID string
	Email  string
	Role   user.Role
}

func (p Principal) Can(permission user.Permission) bool {
	return user.HasPermission(p.Role, permission)
}

// PrincipalFromContext reads the claims placed in ctx by jwtauth.Verifier.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Principal{}, err
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)
	if userID == "" || role == "" {
		return Principal{}, ErrMissingClaims
	}

	return Principal{UserID: userID, Email: email, Role: user.Role(role)}, nil
}

// TokenExpiry returns the exp claim of the verified token in ctx.
func TokenExpiry(ctx context.Context) int64 {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return time.Now().Unix()
	}
	return token.Expiration().Unix()
}

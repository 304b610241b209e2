package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func protected(svc jwt.Service, perm user.Permission) http.Handler {
	r := chi.NewRouter()
	r.Use(Verifier(svc))
	r.Use(AuthRequired(svc))
	r.With(RequirePermission(perm)).Get("/", ok)
	return r
}

func token(t *testing.T, svc jwt.Service, role user.Role) string {
	t.Helper()
	tok, _, err := svc.GenerateAccessToken("11111111-1111-1111-1111-111111111111", "x@sgrh.gn", role)
	require.NoError(t, err)
	return tok
}

func TestAuthRequired(t *testing.T) {
	svc := testutil.JWT()
	h := protected(svc, user.PermissionViewOwnProfile)

	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  int
	}{
		{"no token", func(r *http.Request) {}, http.StatusUnauthorized},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token(t, svc, user.RoleEmployee)) }, http.StatusOK},
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: jwt.CookieName, Value: token(t, svc, user.RoleEmployee)})
		}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthRequired_RevokedToken(t *testing.T) {
	svc := testutil.JWT()
	h := protected(svc, user.PermissionViewOwnProfile)
	tok := token(t, svc, user.RoleAdmin)

	svc.RevokeToken(tok, time.Now().Add(time.Hour).Unix())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermission_ByRole(t *testing.T) {
	svc := testutil.JWT()
	h := protected(svc, user.PermissionPayrollManage)

	for role, want := range map[user.Role]int{
		user.RoleAdmin:    http.StatusOK,
		user.RoleRH:       http.StatusOK,
		user.RoleManager:  http.StatusForbidden,
		user.RoleEmployee: http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, svc, role))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, role)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1.0 / 60, Burst: 2, CleanupInterval: time.Minute})
	defer rl.Stop()
	h := rl.Middleware(http.HandlerFunc(ok))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:5678").Code)
	limited := send("10.0.0.1:9999")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))

	// another client has its own bucket
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234").Code)
	assert.Equal(t, 2, rl.ClientCount())

	rl.cleanup(time.Now().Add(3 * time.Minute))
	assert.Equal(t, 0, rl.ClientCount())
}

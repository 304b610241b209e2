// Package testutil provides in-memory doubles shared by service tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

const Secret = "test-secret-key-for-jwt"

// Tx runs the callback directly without a database.
type Tx struct{}

func (Tx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// JWT returns a token service signed with Secret.
func JWT() jwt.Service {
	return jwt.NewJWTService(Secret, "1h", false)
}

// ContextAs returns a context carrying a verified token for the given caller.
func ContextAs(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	svc := JWT()
	token, _, err := svc.GenerateAccessToken(userID, userID+"@sgrh.test", role)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	decoded, err := svc.JWTAuth().Decode(token)
	if err != nil {
		t.Fatalf("failed to decode token: %v", err)
	}
	return jwtauth.NewContext(context.Background(), decoded, nil)
}

// UserStore is an in-memory user.UserRepository.
type UserStore struct {
	mu    sync.Mutex
	users map[string]user.User
	seq   int

	// RegistrationLocks counts LockRegistration calls.
	RegistrationLocks int
}

func NewUserStore(users ...user.User) *UserStore {
	s := &UserStore{users: make(map[string]user.User)}
	for _, u := range users {
		s.Put(u)
	}
	return s
}

// Put inserts or replaces u, assigning an id when missing.
func (s *UserStore) Put(u user.User) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Matricule == "" {
		s.seq++
		u.Matricule = fmt.Sprintf("EMP%05d", s.seq)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
		u.UpdatedAt = u.CreatedAt
	}
	s.users[u.ID] = u
	return u
}

func (s *UserStore) Get(id string) (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *UserStore) Create(ctx context.Context, newUser user.User) (user.User, error) {
	s.mu.Lock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, newUser.Email) {
			s.mu.Unlock()
			return user.User{}, user.ErrEmailExists
		}
	}
	s.mu.Unlock()
	return s.Put(newUser), nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (user.User, error) {
	if u, ok := s.Get(id); ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (s *UserStore) sorted() []user.User {
	out := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Matricule < out[j].Matricule })
	return out
}

func (s *UserStore) List(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]user.User, 0)
	for _, u := range s.sorted() {
		if filter.DepartementID != nil && (u.DepartementID == nil || *u.DepartementID != *filter.DepartementID) {
			continue
		}
		if filter.Role != nil && string(u.Role) != *filter.Role {
			continue
		}
		if filter.Actif != nil && u.Actif != *filter.Actif {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (s *UserStore) ListActive(ctx context.Context) ([]user.User, error) {
	actif := true
	users, _, err := s.List(ctx, user.UserFilter{Actif: &actif})
	return users, err
}

func (s *UserStore) Update(ctx context.Context, u user.User) (user.User, error) {
	if _, ok := s.Get(u.ID); !ok {
		return user.User{}, user.ErrUserNotFound
	}
	u.UpdatedAt = time.Now()
	return s.Put(u), nil
}

func (s *UserStore) mutate(id string, fn func(u *user.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	fn(&u)
	s.users[id] = u
	return nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return s.mutate(id, func(u *user.User) { u.PasswordHash = passwordHash })
}

func (s *UserStore) UpdatePhoto(ctx context.Context, id string, photo string) error {
	return s.mutate(id, func(u *user.User) { u.Photo = &photo })
}

func (s *UserStore) SetActive(ctx context.Context, id string, actif bool) error {
	return s.mutate(id, func(u *user.User) { u.Actif = actif })
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func (s *UserStore) CountActiveAdmins(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, u := range s.users {
		if u.Role == user.RoleAdmin && u.Actif {
			n++
		}
	}
	return n, nil
}

func (s *UserStore) LockRegistration(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RegistrationLocks++
	return nil
}

package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)
	ListActive(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) (User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdatePhoto(ctx context.Context, id string, photo string) error
	SetActive(ctx context.Context, id string, actif bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountActiveAdmins(ctx context.Context) (int64, error)

	// LockRegistration serializes bootstrap registrations until the
	// surrounding transaction ends.
	LockRegistration(ctx context.Context) error
}

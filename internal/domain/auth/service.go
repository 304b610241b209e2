package auth

import (
	"context"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
)

type AuthService interface {
	// Register creates the first Admin account. It is refused once any user exists.
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context) (user.UserResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}

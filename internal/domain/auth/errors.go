package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountInactive      = errors.New("account is deactivated")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrRegistrationClosed   = errors.New("registration is closed once an account exists")
	ErrWrongCurrentPassword = errors.New("current password does not match")
	ErrUserNotFound         = errors.New("user not found")
	ErrUnauthenticated      = errors.New("authentication required")
)

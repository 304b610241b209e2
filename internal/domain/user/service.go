package user

import "context"

type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetUser(ctx context.Context, id string) (UserResponse, error)
	ListUsers(ctx context.Context, filter UserFilter) (ListUserResponse, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	DeleteUser(ctx context.Context, id string) error

	// ToggleActive flips the actif flag of a single account.
	ToggleActive(ctx context.Context, id string) (UserResponse, error)
	UploadPhoto(ctx context.Context, req UploadPhotoRequest) (UserResponse, error)
}

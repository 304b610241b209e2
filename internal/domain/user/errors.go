package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailExists             = errors.New("email already registered")
	ErrMatriculeExists         = errors.New("matricule already assigned")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrLastActiveAdmin         = errors.New("cannot deactivate the last active admin")
	ErrCannotDeactivateSelf    = errors.New("an admin cannot deactivate their own account")
	ErrCannotDeleteSelf        = errors.New("an admin cannot delete their own account")
)

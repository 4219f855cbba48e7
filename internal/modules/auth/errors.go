package auth

import "designmarket/internal/pkg/apperr"

var (
	ErrUserExists         = apperr.New(apperr.ErrConflict, "USER_EXISTS", "A user with this username or email already exists")
	ErrInvalidCredentials = apperr.New(apperr.ErrUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
	ErrInvalidToken       = apperr.New(apperr.ErrUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
	ErrUserNotFound       = apperr.New(apperr.ErrNotFound, "USER_NOT_FOUND", "User not found")
	ErrInvalidRole        = apperr.Validation("role", "must be one of: client designer")
)

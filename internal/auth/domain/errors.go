package domain

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrForbidden    = errors.New("insufficient permissions")
)

package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("operator login is not configured")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnknownPermission  = errors.New("unknown permission")
)

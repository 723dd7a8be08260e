// Package common defines shared constants, sentinel errors and small helpers
// used across the account service. Callers should use errors.Is to match the
// error values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Token and secret errors.
	ErrSecretTooShort    = errors.New("secret key too short")
	ErrInvalidTokenField = errors.New("token field contains a reserved or control character")

	// Storage setup errors.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

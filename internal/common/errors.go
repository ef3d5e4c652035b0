// Package common defines shared constants and sentinel errors used across
// client and server layers of Shareling. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors, detected locally before any network or database call.
	ErrorValidation = errors.New("validation error")

	// File lifecycle errors reported by the broker for public links.
	ErrorFileDeleted  = errors.New("file deleted")
	ErrorFileExpired  = errors.New("file expired")
	ErrorFileNotReady = errors.New("file not ready")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

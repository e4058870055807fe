package shared

import "errors"

// Errors shared across the auth and session layers.
var (
	// ErrNotFound reports a missing account or session row.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials covers every login failure uniformly, so
	// responses never reveal whether the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCSRFTokenMissing reports a mutating request without a token.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch reports a token that fails comparison.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

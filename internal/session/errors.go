package session

import "errors"

// Error taxonomy for registry and file store operations. The HTTP layer
// maps these onto status codes with errors.Is.
var (
	// ErrNotFound means the session code or file id is unknown.
	ErrNotFound = errors.New("session or file not found")
	// ErrTooLarge means the file exceeds the configured size limit.
	ErrTooLarge = errors.New("file size exceeds limit")
	// ErrCodeInUse means an explicitly requested code already names a session.
	ErrCodeInUse = errors.New("session code already in use")
	// ErrBadFormat means an explicitly requested code violates the code policy.
	ErrBadFormat = errors.New("session code does not match policy")
	// ErrExhaustedRetries means code generation kept colliding with
	// existing sessions until the attempt bound ran out.
	ErrExhaustedRetries = errors.New("exhausted attempts to generate a free session code")
	// ErrDecodeFailure means the uploaded payload could not be decoded.
	ErrDecodeFailure = errors.New("failed to decode file payload")
)

package shared

import "fmt"

var (
	// Store lifecycle errors
	ErrNotReady = fmt.Errorf("store not initialized")
	ErrSchema   = fmt.Errorf("schema setup failed")
	ErrClosed   = fmt.Errorf("store closed")

	// Persistence errors
	ErrWrite    = fmt.Errorf("write failed")
	ErrRead     = fmt.Errorf("read failed")
	ErrNotFound = fmt.Errorf("not found")

	// Credential errors
	ErrEmailTaken         = fmt.Errorf("email already registered")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrHashing            = fmt.Errorf("password hashing failed")
	ErrRateLimited        = fmt.Errorf("too many login attempts")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

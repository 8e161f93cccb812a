package shared

import "errors"

// Configuration
var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrMissingCredentials = errors.New("missing credentials")
)

// Authentication and sessions
var (
	ErrAuthFailed       = errors.New("authentication failed")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrTokenExpired     = errors.New("access token expired")
	ErrInvalidState     = errors.New("invalid state parameter")
	ErrSessionNotFound  = errors.New("session not found")
	ErrTimeout          = errors.New("operation timed out")
)

// Spotify and the dashboard API
var (
	ErrAPIRequest         = errors.New("API request failed")
	ErrServiceUnavailable = errors.New("service unavailable")
	// ErrNoActiveDevice is Spotify's 404 for player commands when no device is open.
	ErrNoActiveDevice = errors.New("no active device")
)

// Input validation
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingArgument = errors.New("missing required argument")
	ErrInvalidArgument = errors.New("invalid argument")
)

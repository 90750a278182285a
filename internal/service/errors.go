package service

import "errors"

// Error kinds surfaced by the session lifecycle manager. Handlers map
// these to HTTP statuses at the request boundary; anything else is an
// internal or upstream failure.
var (
	// ErrRateLimited means the IP created a session inside the
	// cooldown window.
	ErrRateLimited = errors.New("ip cooling down")
	// ErrSessionNotFound means no session row matches the identifier.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired means the session is over its message limit or
	// past its wall-clock timeout.
	ErrSessionExpired = errors.New("session expired")
)

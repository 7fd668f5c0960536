package domain

import "time"

// Identity is the decoded, verified content of a bearer token. It is built
// fresh per request by the auth middleware, never persisted, and immutable
// once constructed. TenantID is the sole authorization key; Email is
// informational only and must never be used for access control.
type Identity struct {
	TenantID  string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

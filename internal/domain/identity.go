package domain

import "time"

// Identity is the (id, email, role) triple carried by a validated session
// token. It is reconstructed per request from the token signature and is the
// source of truth for role and id until the token expires; role changes or
// deactivation after issuance only take effect at the next login.
type Identity struct {
	ID    int64
	Email string
	Role  Role
}

// Session describes an issued token and its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

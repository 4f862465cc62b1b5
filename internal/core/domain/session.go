package domain

import "time"

// SessionClaims is what a verified session artifact asserts about its bearer.
type SessionClaims struct {
	AccountID string
	Email     string
	Role      AccountKind
	ExpiresAt time.Time
}

func (c SessionClaims) IsAdmin() bool { return c.Role == KindAdmin }

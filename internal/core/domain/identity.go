package domain

import "time"

// Role tags as the STWMS backend spells them.
const (
	RoleEmployee = "ROLE_EMPLOYEE"
	RoleManager  = "ROLE_MANAGER"
	RoleAdmin    = "ROLE_ADMIN"
)

// RoleSet is the set of role tags attached to an identity. Order carries no
// meaning; membership is all that matters.
type RoleSet []string

// Has reports whether the set contains the given role tag.
func (rs RoleSet) Has(role string) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// HasAny reports whether the set intersects the given roles.
func (rs RoleSet) HasAny(roles ...string) bool {
	for _, r := range roles {
		if rs.Has(r) {
			return true
		}
	}
	return false
}

// IsManager treats admins as managers, matching the backend's own hierarchy.
func (rs RoleSet) IsManager() bool {
	return rs.HasAny(RoleManager, RoleAdmin)
}

func (rs RoleSet) IsAdmin() bool {
	return rs.Has(RoleAdmin)
}

// Identity is the authenticated principal as the portal knows it. It is
// created by a successful login (or restored from the session store) and is
// read-only everywhere outside the session service.
type Identity struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Roles    RoleSet `json:"roles"`
}

// Session binds exactly one Identity to one opaque bearer credential. The
// token is never inspected for claims; it is only attached to upstream calls.
type Session struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

package domain

import "strings"

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// Identity is the acting user as the client understands it: derived from the
// local session cache or decoded from the token payload. Role gating based on
// it is a UX convenience only; the backend remains the authorization
// boundary.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

// Owns reports whether the identity owns the given booking. Owner ids can
// reach the client in different representations (string vs numeric JSON),
// so the comparison is string-normalized.
func (id Identity) Owns(b Booking) bool {
	return NormalizeID(id.UserID) == NormalizeID(b.OwnerID)
}

// NormalizeID canonicalizes a user id for comparison across code paths.
func NormalizeID(raw string) string {
	return strings.TrimSpace(raw)
}

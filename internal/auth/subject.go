package auth

import "github.com/google/uuid"

// Subject is the authenticated caller, built from already-validated identity
// provider claims. It is passed explicitly into every core call; nothing in
// this package reads ambient request state.
type Subject struct {
	UserID    uuid.UUID
	SubjectID string
	Email     string
	Admin     bool
}

// IsAdmin reports whether the subject carries the admin role claim. Pure
// claim check; no store lookup.
func IsAdmin(s *Subject) bool {
	return s != nil && s.Admin
}

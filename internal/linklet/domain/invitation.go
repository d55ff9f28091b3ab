package domain

import "time"

// Invitation is a single-use offer to join a company with a fixed role.
// It is created pending (AcceptedAt == nil) and transitions exactly once
// to accepted; there is no expiry or revocation.
type Invitation struct {
	ID         string
	CompanyID  string
	Email      string
	Role       Role // Admin or Member, fixed at creation
	InvitedBy  string
	Token      string // opaque single-use token, unique across all invitations
	AcceptedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Pending reports whether the invitation can still be accepted.
func (i Invitation) Pending() bool { return i.AcceptedAt == nil }

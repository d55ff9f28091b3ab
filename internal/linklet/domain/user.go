package domain

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string  // argon2 encoded
	CompanyID    *string // nil for SuperAdmins, set for everyone else
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InCompany reports whether the user belongs to the given company.
func (u User) InCompany(companyID string) bool {
	return u.CompanyID != nil && *u.CompanyID == companyID
}

// TeamMember is the denormalized view returned by the team listing.
type TeamMember struct {
	ID        string
	Name      string
	Email     string
	Role      string // role name or "N/A" when unassigned
	URLCount  int64
	CreatedAt time.Time
}

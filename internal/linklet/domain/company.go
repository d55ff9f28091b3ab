package domain

import "time"

type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyOverview annotates a company with aggregate counts for the
// super-admin listing.
type CompanyOverview struct {
	Company
	UserCount     int64
	ShortURLCount int64
}

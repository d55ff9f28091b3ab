package domain

import "time"

type ShortURL struct {
	ID          string
	CompanyID   string
	CreatedBy   string
	OriginalURL string
	ShortCode   string // fixed-length alphanumeric, globally unique
	CreatedAt   time.Time
}

// ShortURLView joins a short URL with summaries of its creator and company
// for the role-scoped listing.
type ShortURLView struct {
	ShortURL
	CreatorName  string
	CreatorEmail string
	CompanyName  string
}

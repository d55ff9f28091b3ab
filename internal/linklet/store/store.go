package store

import (
	"context"
	"errors"

	"github.com/fernwell/linklet/internal/linklet/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and relies on database unique constraints for the invariants
// the services cannot enforce alone (unique emails, unique short codes,
// single-use invitation tokens).
type Store interface {
	Users() Users
	Companies() Companies
	Invitations() Invitations
	ShortURLs() ShortURLs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step operations that must be atomic
	// (company + invitation creation, user creation + invitation acceptance).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and for unique-email checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// ListTeamMembers returns every user of a company annotated with its
	// short URL count, newest first.
	ListTeamMembers(ctx context.Context, companyID string) ([]domain.TeamMember, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Companies interface {
	// GetCompanyByID fetches a single company.
	GetCompanyByID(ctx context.Context, id string) (domain.Company, error)

	// CreateCompany inserts a new company (id is ULID).
	CreateCompany(ctx context.Context, c domain.Company) error

	// ListCompanyOverviews returns all companies annotated with user and
	// short URL counts, newest first.
	ListCompanyOverviews(ctx context.Context) ([]domain.CompanyOverview, error)

	// Count returns the number of companies.
	Count(ctx context.Context) (int64, error)
}

type Invitations interface {
	// CreateInvitation writes a new pending invitation. Returns
	// ErrAlreadyExists on a token collision (the token column is unique).
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByToken returns an invitation by exact token match.
	GetInvitationByToken(ctx context.Context, token string) (domain.Invitation, error)

	// MarkInvitationAccepted sets accepted_at, guarded by accepted_at IS NULL
	// so acceptance is at-most-once even under concurrent redeemers.
	// Returns ErrNotFound when the invitation is missing or already accepted.
	MarkInvitationAccepted(ctx context.Context, inviteID string) error

	// Count returns the number of invitations.
	Count(ctx context.Context) (int64, error)
}

type ShortURLs interface {
	// CreateShortURL inserts a new mapping. Returns ErrAlreadyExists when
	// the short code is taken; callers treat that as a retry signal.
	CreateShortURL(ctx context.Context, s domain.ShortURL) error

	// GetShortURLByCode resolves a code to its mapping (public redirect path).
	GetShortURLByCode(ctx context.Context, code string) (domain.ShortURL, error)

	// ListAll returns every short URL joined with creator and company
	// summaries, in insertion order.
	ListAll(ctx context.Context) ([]domain.ShortURLView, error)

	// ListByCompany returns a company's short URLs, in insertion order.
	ListByCompany(ctx context.Context, companyID string) ([]domain.ShortURLView, error)

	// ListByCreator returns the short URLs a user created, in insertion order.
	ListByCreator(ctx context.Context, userID string) ([]domain.ShortURLView, error)
}

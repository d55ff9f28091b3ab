package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/fernwell/linklet/internal/linklet/store"
	"github.com/fernwell/linklet/pkg/slogx"
)

var (
	ErrCompaniesForbidden = errors.New("only super admins can list companies")
	ErrTeamForbidden      = errors.New("only admins can list team members")
)

// DirectoryService serves the administrative listings: the super-admin
// company overview and the admin team roster.
type DirectoryService struct {
	Store store.Store
}

// ListCompanies returns every company with user and short URL counts,
// newest first. SuperAdmin only.
func (s *DirectoryService) ListCompanies(
	ctx context.Context,
	caller domain.User,
) ([]domain.CompanyOverview, error) {
	log := slogx.FromContext(ctx)

	if caller.Role != domain.RoleSuperAdmin {
		log.Warn("company listing denied",
			slog.String("user_id", caller.ID),
			slog.String("role", caller.Role.String()),
		)
		return nil, ErrCompaniesForbidden
	}

	return s.Store.Companies().ListCompanyOverviews(ctx)
}

// ListTeam returns every user of the caller's company with its short URL
// count, newest first. Admin only.
func (s *DirectoryService) ListTeam(
	ctx context.Context,
	caller domain.User,
) ([]domain.TeamMember, error) {
	log := slogx.FromContext(ctx)

	if caller.Role != domain.RoleAdmin || caller.CompanyID == nil {
		log.Warn("team listing denied",
			slog.String("user_id", caller.ID),
			slog.String("role", caller.Role.String()),
		)
		return nil, ErrTeamForbidden
	}

	return s.Store.Users().ListTeamMembers(ctx, *caller.CompanyID)
}

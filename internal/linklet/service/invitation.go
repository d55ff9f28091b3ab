package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/fernwell/linklet/internal/linklet/store"
	"github.com/fernwell/linklet/pkg/cryptox"
	"github.com/fernwell/linklet/pkg/idx"
	"github.com/fernwell/linklet/pkg/slogx"

	"github.com/google/uuid"
)

var (
	ErrSuperAdminInviteRole      = errors.New("super admin can only invite admins")
	ErrAdminInviteRole           = errors.New("admin can only invite admins or members")
	ErrCannotInvite              = errors.New("caller cannot send invitations")
	ErrInvalidInviteRequest      = errors.New("invalid invite request")
	ErrInvitationNotFound        = errors.New("invitation not found")
	ErrInvitationAlreadyAccepted = errors.New("invitation has already been accepted")
	ErrEmailAlreadyTaken         = errors.New("email already taken")
)

type InvitationService struct {
	Store store.Store
}

// Invite creates a pending invitation on behalf of inviter.
//
// A SuperAdmin may only invite Admins, and every such invite creates a brand
// new company named after the invitee email. There is no de-duplication: a
// second invite to the same email spawns a second company. An Admin may
// invite Admins or Members into its own company. Nobody else can invite.
func (s *InvitationService) Invite(
	ctx context.Context,
	inviter domain.User,
	email string,
	role domain.Role,
) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Resolve the target company from the inviter's role.
	var (
		company    domain.Company
		newCompany bool
	)
	switch inviter.Role {
	case domain.RoleSuperAdmin:
		if role != domain.RoleAdmin {
			log.Warn("super admin attempted to invite non-admin",
				slog.String("inviter_id", inviter.ID),
				slog.String("role", role.String()),
			)
			return domain.Invitation{}, ErrSuperAdminInviteRole
		}
		company = domain.Company{
			ID:   idx.New().String(),
			Name: email + "'s Company",
		}
		newCompany = true

	case domain.RoleAdmin:
		if role != domain.RoleAdmin && role != domain.RoleMember {
			log.Warn("admin attempted to invite disallowed role",
				slog.String("inviter_id", inviter.ID),
				slog.String("role", role.String()),
			)
			return domain.Invitation{}, ErrAdminInviteRole
		}
		if inviter.CompanyID == nil {
			log.Error("admin inviter has no company", slog.String("inviter_id", inviter.ID))
			return domain.Invitation{}, ErrCannotInvite
		}
		company = domain.Company{ID: *inviter.CompanyID}

	default:
		log.Warn("user without invite authority attempted to invite",
			slog.String("inviter_id", inviter.ID),
			slog.String("inviter_role", inviter.Role.String()),
		)
		return domain.Invitation{}, ErrCannotInvite
	}

	// 2. Build the invitation with a fresh single-use token.
	invitation := domain.Invitation{
		ID:        idx.New().String(),
		CompanyID: company.ID,
		Email:     email,
		Role:      role,
		InvitedBy: inviter.ID,
		Token:     uuid.NewString(),
	}

	// 3. Persist company (when minted by a super admin) and invitation
	// atomically, so a failed invite never leaves an orphan company.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if newCompany {
			if err := tx.Companies().CreateCompany(ctx, company); err != nil {
				log.Error("failed to create company",
					slog.String("company_id", company.ID),
					slog.Any("error", err),
				)
				return err
			}
		}
		if err := tx.Invitations().CreateInvitation(ctx, invitation); err != nil {
			log.Error("failed to create invitation",
				slog.String("invitation_id", invitation.ID),
				slog.Any("error", err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Invitation{}, err
	}

	log.Info("invitation created",
		slog.String("invitation_id", invitation.ID),
		slog.String("company_id", invitation.CompanyID),
		slog.String("role", invitation.Role.String()),
		slog.Bool("new_company", newCompany),
	)

	// 4. The raw token goes back to the caller for out-of-band delivery.
	return invitation, nil
}

// Accept redeems an invitation token and creates the invited user bound to
// the invitation's company and role.
//
// Acceptance is at-most-once: the service rejects already-accepted
// invitations up front, and the store guards the accepted_at transition so
// concurrent redeemers cannot both succeed.
func (s *InvitationService) Accept(
	ctx context.Context,
	token string,
	name string,
	password string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if token == "" || name == "" || password == "" {
		log.Warn("invitation acceptance missing required fields")
		return domain.User{}, ErrInvalidInviteRequest
	}

	// 2. Look up the invitation by exact token match.
	invitation, err := s.Store.Invitations().GetInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invitation acceptance attempted with unknown token")
			return domain.User{}, ErrInvitationNotFound
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return domain.User{}, err
	}

	// 3. Reject tokens that were already redeemed.
	if !invitation.Pending() {
		log.Warn("invitation acceptance attempted with already-accepted token",
			slog.String("invitation_id", invitation.ID),
		)
		return domain.User{}, ErrInvitationAlreadyAccepted
	}

	// 4. The invited email must still be free.
	_, err = s.Store.Users().GetUserByEmail(ctx, invitation.Email)
	if err == nil {
		log.Warn("invitation acceptance attempted for already-registered email",
			slog.String("invitation_id", invitation.ID),
		)
		return domain.User{}, ErrEmailAlreadyTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.User{}, err
	}

	// 5. Hash the password using Argon2id.
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	// 6. Create the user and consume the invitation atomically.
	companyID := invitation.CompanyID
	newUser := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        invitation.Email,
		PasswordHash: passwordHash,
		CompanyID:    &companyID,
		Role:         invitation.Role,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, newUser); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailAlreadyTaken
			}
			log.Error("failed to create user",
				slog.String("invitation_id", invitation.ID),
				slog.Any("error", err),
			)
			return err
		}

		if err := tx.Invitations().MarkInvitationAccepted(ctx, invitation.ID); err != nil {
			// A lost race with a concurrent redeemer surfaces here.
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvitationAlreadyAccepted
			}
			log.Error("failed to mark invitation accepted",
				slog.String("invitation_id", invitation.ID),
				slog.Any("error", err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	log.Info("user registered via invitation",
		slog.String("user_id", newUser.ID),
		slog.String("invitation_id", invitation.ID),
		slog.String("company_id", invitation.CompanyID),
		slog.String("role", invitation.Role.String()),
	)

	return newUser, nil
}

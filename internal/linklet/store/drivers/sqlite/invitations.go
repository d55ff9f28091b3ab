package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/fernwell/linklet/internal/linklet/store"
)

type invitationsRepo struct {
	db dbtx
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invitations (id, company_id, email, role, invited_by, token, accepted_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.CompanyID, inv.Email, string(inv.Role), inv.InvitedBy, inv.Token,
		mapOptionalTime(inv.AcceptedAt), now, now)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByToken(ctx context.Context, token string) (domain.Invitation, error) {
	var (
		inv        domain.Invitation
		role       string
		acceptedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, company_id, email, role, invited_by, token, accepted_at, created_at, updated_at
		 FROM invitations WHERE token = ?`, token).
		Scan(&inv.ID, &inv.CompanyID, &inv.Email, &role, &inv.InvitedBy, &inv.Token,
			&acceptedAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	inv.Role = mapRole(role)
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	return inv, nil
}

// MarkInvitationAccepted is guarded by accepted_at IS NULL: of two
// concurrent redeemers only one update can match the row.
func (r *invitationsRepo) MarkInvitationAccepted(ctx context.Context, inviteID string) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET accepted_at = ?, updated_at = ? WHERE id = ? AND accepted_at IS NULL`,
		now, now, inviteID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitationsRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invitations`).Scan(&count)
	return count, err
}

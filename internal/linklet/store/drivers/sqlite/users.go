package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fernwell/linklet/internal/linklet/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, name, email, password_hash, company_id, role, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (domain.User, error) {
	var (
		u         domain.User
		companyID sql.NullString
		role      string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &companyID, &role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	u.CompanyID = mapNullStringPtr(companyID)
	u.Role = mapRole(role)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, company_id, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, mapOptionalString(u.CompanyID), string(u.Role), now, now)
	return mapConstraint(err)
}

func (r *usersRepo) ListTeamMembers(ctx context.Context, companyID string) ([]domain.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.name, u.email, u.role, COUNT(s.id), u.created_at
		 FROM users u
		 LEFT JOIN short_urls s ON s.created_by = u.id
		 WHERE u.company_id = ?
		 GROUP BY u.id
		 ORDER BY u.created_at DESC, u.id DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var (
			m    domain.TeamMember
			role string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &role, &m.URLCount, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Role = mapRole(role).Display()
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

package sqlite

import (
	"context"
	"time"

	"github.com/fernwell/linklet/internal/linklet/domain"
)

type companiesRepo struct {
	db dbtx
}

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	var c domain.Company
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM companies WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return c, nil
}

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, now, now)
	return mapConstraint(err)
}

func (r *companiesRepo) ListCompanyOverviews(ctx context.Context) ([]domain.CompanyOverview, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.created_at, c.updated_at,
		        (SELECT COUNT(*) FROM users u WHERE u.company_id = c.id),
		        (SELECT COUNT(*) FROM short_urls s WHERE s.company_id = c.id)
		 FROM companies c
		 ORDER BY c.created_at DESC, c.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overviews []domain.CompanyOverview
	for rows.Next() {
		var o domain.CompanyOverview
		if err := rows.Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt, &o.UserCount, &o.ShortURLCount); err != nil {
			return nil, err
		}
		overviews = append(overviews, o)
	}
	return overviews, rows.Err()
}

func (r *companiesRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count)
	return count, err
}

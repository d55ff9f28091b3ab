package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fernwell/linklet/internal/linklet/domain"
)

type shortURLsRepo struct {
	db dbtx
}

// listQuery joins each mapping with its creator and company. Listings keep
// insertion order (ULIDs sort by creation time), unlike the company and team
// listings which are newest-first.
const listQuery = `SELECT s.id, s.company_id, s.created_by, s.original_url, s.short_code, s.created_at,
       u.name, u.email, c.name
 FROM short_urls s
 JOIN users u ON u.id = s.created_by
 JOIN companies c ON c.id = s.company_id`

func (r *shortURLsRepo) CreateShortURL(ctx context.Context, s domain.ShortURL) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO short_urls (id, company_id, created_by, original_url, short_code, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.CompanyID, s.CreatedBy, s.OriginalURL, s.ShortCode, now)
	return mapConstraint(err)
}

func (r *shortURLsRepo) GetShortURLByCode(ctx context.Context, code string) (domain.ShortURL, error) {
	var s domain.ShortURL
	err := r.db.QueryRowContext(ctx,
		`SELECT id, company_id, created_by, original_url, short_code, created_at
		 FROM short_urls WHERE short_code = ?`, code).
		Scan(&s.ID, &s.CompanyID, &s.CreatedBy, &s.OriginalURL, &s.ShortCode, &s.CreatedAt)
	if err != nil {
		return domain.ShortURL{}, mapNotFound(err)
	}
	return s, nil
}

func (r *shortURLsRepo) ListAll(ctx context.Context) ([]domain.ShortURLView, error) {
	rows, err := r.db.QueryContext(ctx, listQuery+` ORDER BY s.id`)
	if err != nil {
		return nil, err
	}
	return collectViews(rows)
}

func (r *shortURLsRepo) ListByCompany(ctx context.Context, companyID string) ([]domain.ShortURLView, error) {
	rows, err := r.db.QueryContext(ctx, listQuery+` WHERE s.company_id = ? ORDER BY s.id`, companyID)
	if err != nil {
		return nil, err
	}
	return collectViews(rows)
}

func (r *shortURLsRepo) ListByCreator(ctx context.Context, userID string) ([]domain.ShortURLView, error) {
	rows, err := r.db.QueryContext(ctx, listQuery+` WHERE s.created_by = ? ORDER BY s.id`, userID)
	if err != nil {
		return nil, err
	}
	return collectViews(rows)
}

func collectViews(rows *sql.Rows) ([]domain.ShortURLView, error) {
	defer rows.Close()

	var views []domain.ShortURLView
	for rows.Next() {
		var v domain.ShortURLView
		err := rows.Scan(&v.ID, &v.CompanyID, &v.CreatedBy, &v.OriginalURL, &v.ShortCode, &v.CreatedAt,
			&v.CreatorName, &v.CreatorEmail, &v.CompanyName)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

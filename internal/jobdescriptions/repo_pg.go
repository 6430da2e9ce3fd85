package jobdescriptions

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new job description.
func (r *PGRepo) Create(ctx context.Context, jd JobDescription) error {
	const query = `
INSERT INTO job_descriptions (id, user_id, title, company, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	var company any
	if jd.Company != "" {
		company = jd.Company
	}
	_, err := r.DB.ExecContext(ctx, query,
		jd.ID,
		jd.UserID,
		jd.Title,
		company,
		jd.Description,
		jd.CreatedAt,
	)
	return err
}

// GetByID returns a job description by ID.
func (r *PGRepo) GetByID(ctx context.Context, jdID string) (JobDescription, error) {
	const query = `
SELECT id, user_id, title, company, description, created_at
FROM job_descriptions
WHERE id = $1
LIMIT 1`
	var jd JobDescription
	var company sql.NullString
	err := r.DB.QueryRowContext(ctx, query, jdID).Scan(
		&jd.ID,
		&jd.UserID,
		&jd.Title,
		&company,
		&jd.Description,
		&jd.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobDescription{}, ErrNotFound
		}
		return JobDescription{}, err
	}
	if company.Valid {
		jd.Company = company.String
	}
	return jd, nil
}

// ListByUser returns a user's job descriptions, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]JobDescription, error) {
	const query = `
SELECT id, user_id, title, company, description, created_at
FROM job_descriptions
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobDescription, 0)
	for rows.Next() {
		var jd JobDescription
		var company sql.NullString
		if err := rows.Scan(&jd.ID, &jd.UserID, &jd.Title, &company, &jd.Description, &jd.CreatedAt); err != nil {
			return nil, err
		}
		if company.Valid {
			jd.Company = company.String
		}
		out = append(out, jd)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo is the Postgres-backed Repo.
type PGRepo struct {
	DB *sql.DB
}

func NewPGRepo(db *sql.DB) *PGRepo { return &PGRepo{DB: db} }

func (r *PGRepo) Upsert(ctx context.Context, p Profile) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO profiles (id, user_id, full_name, headline, summary, created_at, updated_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			headline = EXCLUDED.headline,
			summary = EXCLUDED.summary,
			updated_at = EXCLUDED.updated_at
	`, p.ID, p.UserID, p.FullName, p.Headline, p.Summary, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Profile, error) {
	return r.get(ctx, `SELECT id, user_id, full_name, headline, summary, created_at, updated_at FROM profiles WHERE id = $1::uuid`, id)
}

func (r *PGRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	return r.get(ctx, `SELECT id, user_id, full_name, headline, summary, created_at, updated_at FROM profiles WHERE user_id = $1`, userID)
}

func (r *PGRepo) get(ctx context.Context, query, arg string) (Profile, error) {
	var p Profile
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Headline, &p.Summary, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if err := r.loadCollections(ctx, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (r *PGRepo) loadCollections(ctx context.Context, p *Profile) error {
	p.Education = []Education{}
	p.Languages = []Language{}
	p.Skills = []Skill{}
	p.WorkExperiences = []WorkExperience{}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, profile_id, school, degree, field, start_year, end_year, order_index
		FROM educations WHERE profile_id = $1::uuid ORDER BY order_index
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load educations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e Education
		var degree, field sql.NullString
		var startYear, endYear sql.NullInt64
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.School, &degree, &field, &startYear, &endYear, &e.OrderIndex); err != nil {
			return fmt.Errorf("scan education: %w", err)
		}
		e.Degree = degree.String
		e.Field = field.String
		if startYear.Valid {
			v := int(startYear.Int64)
			e.StartYear = &v
		}
		if endYear.Valid {
			v := int(endYear.Int64)
			e.EndYear = &v
		}
		p.Education = append(p.Education, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate educations: %w", err)
	}

	langRows, err := r.DB.QueryContext(ctx, `
		SELECT id, profile_id, name, proficiency FROM languages WHERE profile_id = $1::uuid ORDER BY name
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load languages: %w", err)
	}
	defer langRows.Close()
	for langRows.Next() {
		var l Language
		var prof sql.NullString
		if err := langRows.Scan(&l.ID, &l.ProfileID, &l.Name, &prof); err != nil {
			return fmt.Errorf("scan language: %w", err)
		}
		if prof.Valid {
			l.Proficiency = &prof.String
		}
		p.Languages = append(p.Languages, l)
	}
	if err := langRows.Err(); err != nil {
		return fmt.Errorf("iterate languages: %w", err)
	}

	skillRows, err := r.DB.QueryContext(ctx, `
		SELECT id, profile_id, name, category, proficiency FROM skills WHERE profile_id = $1::uuid ORDER BY name
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load skills: %w", err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var s Skill
		var category, prof sql.NullString
		if err := skillRows.Scan(&s.ID, &s.ProfileID, &s.Name, &category, &prof); err != nil {
			return fmt.Errorf("scan skill: %w", err)
		}
		if category.Valid {
			s.Category = &category.String
		}
		if prof.Valid {
			s.Proficiency = &prof.String
		}
		p.Skills = append(p.Skills, s)
	}
	if err := skillRows.Err(); err != nil {
		return fmt.Errorf("iterate skills: %w", err)
	}

	expRows, err := r.DB.QueryContext(ctx, `
		SELECT id, profile_id, company, title, description, start_date, end_date, order_index
		FROM work_experiences WHERE profile_id = $1::uuid ORDER BY order_index
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load work experiences: %w", err)
	}
	defer expRows.Close()
	for expRows.Next() {
		var w WorkExperience
		var description, startDate, endDate sql.NullString
		if err := expRows.Scan(&w.ID, &w.ProfileID, &w.Company, &w.Title, &description, &startDate, &endDate, &w.OrderIndex); err != nil {
			return fmt.Errorf("scan work experience: %w", err)
		}
		w.Description = description.String
		w.StartDate = startDate.String
		if endDate.Valid {
			w.EndDate = &endDate.String
		}
		p.WorkExperiences = append(p.WorkExperiences, w)
	}
	if err := expRows.Err(); err != nil {
		return fmt.Errorf("iterate work experiences: %w", err)
	}
	return nil
}

func (r *PGRepo) ReplaceEducation(ctx context.Context, profileID string, items []Education) (int, error) {
	return r.replace(ctx, profileID, "educations", len(items), func(tx *sql.Tx) error {
		for _, e := range items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO educations (id, profile_id, school, degree, field, start_year, end_year, order_index)
				VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7, $8)
			`, e.ID, profileID, e.School, nullIfEmpty(e.Degree), nullIfEmpty(e.Field), e.StartYear, e.EndYear, e.OrderIndex)
			if err != nil {
				return fmt.Errorf("insert education: %w", err)
			}
		}
		return nil
	})
}

func (r *PGRepo) ReplaceLanguages(ctx context.Context, profileID string, items []Language) (int, error) {
	return r.replace(ctx, profileID, "languages", len(items), func(tx *sql.Tx) error {
		for _, l := range items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO languages (id, profile_id, name, proficiency)
				VALUES ($1::uuid, $2::uuid, $3, $4)
			`, l.ID, profileID, l.Name, l.Proficiency)
			if err != nil {
				return fmt.Errorf("insert language: %w", err)
			}
		}
		return nil
	})
}

func (r *PGRepo) ReplaceSkills(ctx context.Context, profileID string, items []Skill) (int, error) {
	return r.replace(ctx, profileID, "skills", len(items), func(tx *sql.Tx) error {
		for _, s := range items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO skills (id, profile_id, name, category, proficiency)
				VALUES ($1::uuid, $2::uuid, $3, $4, $5)
			`, s.ID, profileID, s.Name, s.Category, s.Proficiency)
			if err != nil {
				return fmt.Errorf("insert skill: %w", err)
			}
		}
		return nil
	})
}

func (r *PGRepo) ReplaceWorkExperiences(ctx context.Context, profileID string, items []WorkExperience) (int, error) {
	return r.replace(ctx, profileID, "work_experiences", len(items), func(tx *sql.Tx) error {
		for _, w := range items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO work_experiences (id, profile_id, company, title, description, start_date, end_date, order_index)
				VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7, $8)
			`, w.ID, profileID, w.Company, w.Title, nullIfEmpty(w.Description), nullIfEmpty(w.StartDate), w.EndDate, w.OrderIndex)
			if err != nil {
				return fmt.Errorf("insert work experience: %w", err)
			}
		}
		return nil
	})
}

// replace swaps a sub-collection inside one transaction. The profile row is
// locked first so concurrent replaces of the same collection serialize.
func (r *PGRepo) replace(ctx context.Context, profileID, table string, count int, insert func(tx *sql.Tx) error) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM profiles WHERE id = $1::uuid FOR UPDATE`, profileID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lock profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE profile_id = $1::uuid`, profileID); err != nil {
		return 0, fmt.Errorf("clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE profiles SET updated_at = now() WHERE id = $1::uuid`, profileID); err != nil {
		return 0, fmt.Errorf("touch profile: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace: %w", err)
	}
	return count, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

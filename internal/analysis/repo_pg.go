package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis job.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO analysis_jobs (
	id, user_id, job_description_id, job_description_text, status, match_score,
	strengths, gaps, missing_skills, suggested_focus_areas, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`
	strengths, err := marshalStrings(job.Strengths)
	if err != nil {
		return err
	}
	gaps, err := marshalStrings(job.Gaps)
	if err != nil {
		return err
	}
	missing, err := marshalStrings(job.MissingSkills)
	if err != nil {
		return err
	}
	focus, err := marshalStrings(job.SuggestedFocusAreas)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		job.ID,
		job.UserID,
		nullIfEmpty(job.JobDescriptionID),
		job.JobDescriptionText,
		job.Status,
		job.MatchScore,
		strengths,
		gaps,
		missing,
		focus,
		job.CreatedAt,
	)
	return err
}

// GetByID returns an analysis job by ID.
func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const query = `
SELECT id, user_id, job_description_id, job_description_text, status, match_score,
       strengths, gaps, missing_skills, suggested_focus_areas,
       failure_code, failure_message, created_at, started_at, completed_at, updated_at
FROM analysis_jobs
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, jobID)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

// MarkStarted records the execution start time for a processing job.
func (r *PGRepo) MarkStarted(ctx context.Context, jobID string, startedAt time.Time) error {
	const query = `
UPDATE analysis_jobs
SET started_at = COALESCE(started_at, $1::timestamptz),
    updated_at = now()
WHERE id = $2::uuid AND status = 'processing'`
	res, err := r.DB.ExecContext(ctx, query, startedAt, jobID)
	if err != nil {
		return err
	}
	// A terminal job is a late delivery; nothing to record.
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, jobID); err != nil {
			return err
		}
	}
	return nil
}

// Complete transitions a processing job to completed with its result fields.
// The guard on status makes the transition a compare-and-swap: exactly one
// caller wins, duplicates report false.
func (r *PGRepo) Complete(ctx context.Context, jobID string, result Result, completedAt time.Time) (bool, error) {
	const query = `
UPDATE analysis_jobs
SET status = 'completed',
    match_score = $1,
    strengths = $2::jsonb,
    gaps = $3::jsonb,
    missing_skills = $4::jsonb,
    suggested_focus_areas = $5::jsonb,
    completed_at = $6::timestamptz,
    updated_at = now()
WHERE id = $7::uuid AND status = 'processing'`
	strengths, err := marshalStrings(result.Strengths)
	if err != nil {
		return false, err
	}
	gaps, err := marshalStrings(result.Gaps)
	if err != nil {
		return false, err
	}
	missing, err := marshalStrings(result.MissingSkills)
	if err != nil {
		return false, err
	}
	focus, err := marshalStrings(result.SuggestedFocusAreas)
	if err != nil {
		return false, err
	}
	res, err := r.DB.ExecContext(ctx, query,
		result.MatchScore, strengths, gaps, missing, focus, completedAt, jobID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		if _, err := r.GetByID(ctx, jobID); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// Fail transitions a processing job to failed with a reason.
func (r *PGRepo) Fail(ctx context.Context, jobID, code, message string, completedAt time.Time) (bool, error) {
	const query = `
UPDATE analysis_jobs
SET status = 'failed',
    failure_code = $1,
    failure_message = $2,
    completed_at = $3::timestamptz,
    updated_at = now()
WHERE id = $4::uuid AND status = 'processing'`
	res, err := r.DB.ExecContext(ctx, query, code, message, completedAt, jobID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		if _, err := r.GetByID(ctx, jobID); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// LatestByJobDescription returns the newest job per job description ID.
func (r *PGRepo) LatestByJobDescription(ctx context.Context, userID string, jobDescriptionIDs []string) (map[string]Job, error) {
	if len(jobDescriptionIDs) == 0 {
		return map[string]Job{}, nil
	}
	placeholders := make([]string, 0, len(jobDescriptionIDs))
	args := make([]any, 0, len(jobDescriptionIDs)+1)
	args = append(args, userID)
	for i, id := range jobDescriptionIDs {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, id)
	}
	query := fmt.Sprintf(`
SELECT DISTINCT ON (job_description_id)
       id, user_id, job_description_id, job_description_text, status, match_score,
       strengths, gaps, missing_skills, suggested_focus_areas,
       failure_code, failure_message, created_at, started_at, completed_at, updated_at
FROM analysis_jobs
WHERE user_id = $1 AND job_description_id IN (%s)
ORDER BY job_description_id, created_at DESC`, strings.Join(placeholders, ", "))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	latest := make(map[string]Job)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		latest[job.JobDescriptionID] = job
	}
	return latest, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var jdID sql.NullString
	var strengths, gaps, missing, focus []byte
	var failureCode, failureMessage sql.NullString
	var startedAt, completedAt sql.NullTime
	err := row.Scan(
		&job.ID,
		&job.UserID,
		&jdID,
		&job.JobDescriptionText,
		&job.Status,
		&job.MatchScore,
		&strengths,
		&gaps,
		&missing,
		&focus,
		&failureCode,
		&failureMessage,
		&job.CreatedAt,
		&startedAt,
		&completedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return Job{}, err
	}
	if jdID.Valid {
		job.JobDescriptionID = jdID.String
	}
	if job.Strengths, err = unmarshalStrings(strengths); err != nil {
		return Job{}, err
	}
	if job.Gaps, err = unmarshalStrings(gaps); err != nil {
		return Job{}, err
	}
	if job.MissingSkills, err = unmarshalStrings(missing); err != nil {
		return Job{}, err
	}
	if job.SuggestedFocusAreas, err = unmarshalStrings(focus); err != nil {
		return Job{}, err
	}
	if failureCode.Valid {
		job.FailureCode = failureCode.String
	}
	if failureMessage.Valid {
		job.FailureMessage = failureMessage.String
	}
	if startedAt.Valid {
		job.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	return job, nil
}

func marshalStrings(in []string) ([]byte, error) {
	if in == nil {
		in = []string{}
	}
	return json.Marshal(in)
}

func unmarshalStrings(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

var _ Repo = (*PGRepo)(nil)

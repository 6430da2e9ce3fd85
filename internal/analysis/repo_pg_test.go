package analysis

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCompleteWinsCompareAndSwap(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	completedAt := time.Now().UTC()
	result := Result{
		MatchScore:          82,
		Strengths:           []string{"Go"},
		Gaps:                []string{"K8s"},
		MissingSkills:       []string{},
		SuggestedFocusAreas: []string{},
	}

	mock.ExpectExec("UPDATE analysis_jobs").
		WithArgs(
			result.MatchScore,
			sqlmock.AnyArg(), // strengths jsonb
			sqlmock.AnyArg(), // gaps jsonb
			sqlmock.AnyArg(), // missing_skills jsonb
			sqlmock.AnyArg(), // suggested_focus_areas jsonb
			completedAt,
			"job-1",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	won, err := repo.Complete(context.Background(), "job-1", result, completedAt)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !won {
		t.Fatalf("expected transition to win")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCompleteDuplicateIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	completedAt := time.Now().UTC()

	mock.ExpectExec("UPDATE analysis_jobs").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Zero rows means the guard failed; the repo confirms the job exists
	// before reporting a lost swap.
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "job_description_id", "job_description_text", "status", "match_score",
		"strengths", "gaps", "missing_skills", "suggested_focus_areas",
		"failure_code", "failure_message", "created_at", "started_at", "completed_at", "updated_at",
	}).AddRow(
		"job-1", "user-1", nil, "jd text", StatusCompleted, 90,
		[]byte(`["a"]`), []byte(`[]`), []byte(`[]`), []byte(`[]`),
		nil, nil, completedAt, completedAt, completedAt, completedAt,
	)
	mock.ExpectQuery("SELECT id, user_id").WillReturnRows(rows)

	won, err := repo.Complete(context.Background(), "job-1", Result{MatchScore: 10}, completedAt)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if won {
		t.Fatalf("expected duplicate to lose the swap")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoFailMissingJobReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE analysis_jobs").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, user_id").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.Fail(context.Background(), "job-missing", FailureCodeRetriesExhausted, "boom", time.Now().UTC())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateSendsEmptyArrays(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	job := Job{
		ID:                  "job-1",
		UserID:              "user-1",
		JobDescriptionText:  "jd",
		Status:              StatusProcessing,
		Strengths:           []string{},
		Gaps:                []string{},
		MissingSkills:       []string{},
		SuggestedFocusAreas: []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	mock.ExpectExec("INSERT INTO analysis_jobs").
		WithArgs(
			job.ID,
			job.UserID,
			nil,
			job.JobDescriptionText,
			job.Status,
			job.MatchScore,
			[]byte(`[]`),
			[]byte(`[]`),
			[]byte(`[]`),
			[]byte(`[]`),
			job.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), job); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

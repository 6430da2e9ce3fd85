package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvmatch-backend/internal/queue"
	"cvmatch-backend/internal/shared/apperr"
	"cvmatch-backend/internal/shared/metrics"
	"cvmatch-backend/internal/shared/telemetry"
)

const messageVersion = 1

// JobDescriptionRecord is the subset of a stored job description the
// orchestrator needs for ownership checks on submit.
type JobDescriptionRecord struct {
	ID          string
	UserID      string
	Description string
}

// ErrJobDescriptionNotFound is returned by a JobDescriptionSource when the
// referenced row does not exist.
var ErrJobDescriptionNotFound = errors.New("job description not found")

// JobDescriptionSource resolves a referenced job description.
type JobDescriptionSource interface {
	GetByID(ctx context.Context, jdID string) (JobDescriptionRecord, error)
}

// Service is the job orchestrator: it turns an analysis request into a
// durable job row plus one task submission, and owns the terminal status
// transition contract the task runner reports through.
type Service struct {
	Repo            Repo
	JobDescriptions JobDescriptionSource
	Queue           queue.Client
}

// Submit creates a processing job and dispatches the analysis task.
//
// The returned job is still processing; callers poll it. If the queue rejects
// the task the job is marked failed before the error surfaces, so a poller
// never waits on a job that never entered the queue.
func (s *Service) Submit(ctx context.Context, userID, jobDescriptionID, jobDescriptionText string) (Job, error) {
	if userID == "" {
		return Job{}, errors.New("userID is required")
	}
	if strings.TrimSpace(jobDescriptionID) == "" && strings.TrimSpace(jobDescriptionText) == "" {
		return Job{}, apperr.Validation("jobDescriptionId or jobDescription is required", []map[string]string{
			{"field": "jobDescription", "issue": "required"},
		})
	}

	if strings.TrimSpace(jobDescriptionID) != "" && s.JobDescriptions != nil {
		record, err := s.JobDescriptions.GetByID(ctx, jobDescriptionID)
		if err != nil {
			if errors.Is(err, ErrJobDescriptionNotFound) {
				return Job{}, apperr.NotFound("job description not found")
			}
			return Job{}, err
		}
		if record.UserID != userID {
			return Job{}, apperr.Unauthorized("job description not owned by caller")
		}
		if strings.TrimSpace(jobDescriptionText) == "" {
			jobDescriptionText = record.Description
		}
	}

	now := time.Now().UTC()
	job := Job{
		ID:                  uuid.NewString(),
		UserID:              userID,
		JobDescriptionID:    strings.TrimSpace(jobDescriptionID),
		JobDescriptionText:  jobDescriptionText,
		Status:              StatusProcessing,
		Strengths:           []string{},
		Gaps:                []string{},
		MissingSkills:       []string{},
		SuggestedFocusAreas: []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}

	msg := queue.Message{
		AnalysisID:         job.ID,
		UserID:             userID,
		JobDescriptionID:   job.JobDescriptionID,
		JobDescriptionText: jobDescriptionText,
		RequestID:          requestIDFromContext(ctx),
		EnqueuedAt:         now.Format(time.RFC3339),
		Version:            messageVersion,
	}

	var dispatchErr error
	if s.Queue == nil {
		dispatchErr = errors.New("task queue not configured")
	} else {
		dispatchErr = s.Queue.Send(ctx, msg)
	}
	if dispatchErr != nil {
		s.failOnDispatch(ctx, job.ID, dispatchErr)
		return Job{}, apperr.Dispatch(dispatchErr)
	}

	metrics.IncAnalysisSubmitted()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":  msg.RequestID,
		"user_id":     userID,
		"analysis_id": job.ID,
		"status":      StatusProcessing,
	})
	return job, nil
}

// Get returns a job, enforcing the owner-scoped visibility rules: missing
// jobs are NotFound, foreign-owned jobs are Unauthorized.
func (s *Service) Get(ctx context.Context, userID, jobID string) (Job, error) {
	if jobID == "" {
		return Job{}, apperr.Validation("analysis id is required", nil)
	}
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Job{}, apperr.NotFound("analysis not found")
		}
		return Job{}, err
	}
	if job.UserID != userID {
		return Job{}, apperr.Unauthorized("analysis not owned by caller")
	}
	return job, nil
}

// ReportResult records a successful analysis. The transition is a
// compare-and-swap on status == processing; duplicate or late deliveries are
// a no-op and the first caller's data is retained.
func (s *Service) ReportResult(ctx context.Context, jobID string, result Result) error {
	if result.MatchScore < 0 || result.MatchScore > 100 {
		return fmt.Errorf("match score %d out of range", result.MatchScore)
	}
	completedAt := time.Now().UTC()
	won, err := s.Repo.Complete(ctx, jobID, result, completedAt)
	if err != nil {
		return err
	}
	if !won {
		telemetry.Info("analysis.duplicate_report", map[string]any{
			"analysis_id": jobID,
			"outcome":     StatusCompleted,
		})
		return nil
	}
	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"analysis_id":       jobID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
	})
	return nil
}

// ReportFailure records a failed analysis with a reason code. Like
// ReportResult it is idempotent against duplicate delivery.
func (s *Service) ReportFailure(ctx context.Context, jobID, code string, cause error) error {
	completedAt := time.Now().UTC()
	won, err := s.Repo.Fail(ctx, jobID, code, sanitizeError(cause), completedAt)
	if err != nil {
		return err
	}
	if !won {
		telemetry.Info("analysis.duplicate_report", map[string]any{
			"analysis_id": jobID,
			"outcome":     StatusFailed,
		})
		return nil
	}
	metrics.IncAnalysisFailed()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"analysis_id":       jobID,
		"status":            StatusFailed,
		"failure_code":      code,
		"status_transition": "processing->failed",
	})
	return nil
}

func (s *Service) failOnDispatch(ctx context.Context, jobID string, cause error) {
	// Use a fresh context: the request context may already be done, and the
	// job must not be left processing forever.
	completedAt := time.Now().UTC()
	if _, err := s.Repo.Fail(context.Background(), jobID, FailureCodeDispatch, sanitizeError(cause), completedAt); err != nil {
		telemetry.Error("analysis.dispatch_fail_mark", map[string]any{
			"analysis_id": jobID,
			"error":       err.Error(),
			"cause":       cause.Error(),
		})
	}
	metrics.IncAnalysisDispatchFailed()
	telemetry.Error("analysis.dispatch_failed", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"analysis_id": jobID,
		"error":       cause.Error(),
	})
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

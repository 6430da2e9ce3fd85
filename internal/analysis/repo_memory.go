package analysis

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo stores analysis jobs in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Job
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Job)}
}

// Create stores the job.
func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[job.ID] = job
	return nil
}

// GetByID returns a job by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.byID[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// MarkStarted records the execution start time for a processing job.
func (r *MemoryRepo) MarkStarted(ctx context.Context, jobID string, startedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.byID[jobID]
	if !ok {
		return ErrNotFound
	}
	if job.Status != StatusProcessing || job.StartedAt != nil {
		return nil
	}
	job.StartedAt = &startedAt
	job.UpdatedAt = time.Now().UTC()
	r.byID[jobID] = job
	return nil
}

// Complete transitions a processing job to completed with its result fields.
func (r *MemoryRepo) Complete(ctx context.Context, jobID string, result Result, completedAt time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.byID[jobID]
	if !ok {
		return false, ErrNotFound
	}
	if job.Status != StatusProcessing {
		return false, nil
	}
	job.Status = StatusCompleted
	job.MatchScore = result.MatchScore
	job.Strengths = copyStrings(result.Strengths)
	job.Gaps = copyStrings(result.Gaps)
	job.MissingSkills = copyStrings(result.MissingSkills)
	job.SuggestedFocusAreas = copyStrings(result.SuggestedFocusAreas)
	job.CompletedAt = &completedAt
	job.UpdatedAt = time.Now().UTC()
	r.byID[jobID] = job
	return true, nil
}

// Fail transitions a processing job to failed with a reason.
func (r *MemoryRepo) Fail(ctx context.Context, jobID, code, message string, completedAt time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.byID[jobID]
	if !ok {
		return false, ErrNotFound
	}
	if job.Status != StatusProcessing {
		return false, nil
	}
	job.Status = StatusFailed
	job.FailureCode = code
	job.FailureMessage = message
	job.CompletedAt = &completedAt
	job.UpdatedAt = time.Now().UTC()
	r.byID[jobID] = job
	return true, nil
}

// LatestByJobDescription returns the newest job per job description ID.
func (r *MemoryRepo) LatestByJobDescription(ctx context.Context, userID string, jobDescriptionIDs []string) (map[string]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(jobDescriptionIDs))
	for _, id := range jobDescriptionIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	latest := make(map[string]Job)
	for _, job := range r.byID {
		if job.UserID != userID || job.JobDescriptionID == "" {
			continue
		}
		if _, ok := wanted[job.JobDescriptionID]; !ok {
			continue
		}
		if existing, ok := latest[job.JobDescriptionID]; !ok || job.CreatedAt.After(existing.CreatedAt) {
			latest[job.JobDescriptionID] = job
		}
	}
	return latest, nil
}

func copyStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

var _ Repo = (*MemoryRepo)(nil)

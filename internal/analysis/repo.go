package analysis

import (
	"context"
	"time"
)

// Repo defines persistence operations for analysis jobs.
//
// Complete and Fail are compare-and-swap transitions guarded on
// status == processing: they report false without mutating anything when the
// job is already terminal, which makes duplicate task delivery a no-op.
type Repo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, jobID string) (Job, error)
	MarkStarted(ctx context.Context, jobID string, startedAt time.Time) error
	Complete(ctx context.Context, jobID string, result Result, completedAt time.Time) (bool, error)
	Fail(ctx context.Context, jobID, code, message string, completedAt time.Time) (bool, error)
	LatestByJobDescription(ctx context.Context, userID string, jobDescriptionIDs []string) (map[string]Job, error)
}

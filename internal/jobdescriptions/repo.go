package jobdescriptions

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("job description not found")

// Repo defines persistence operations for job descriptions.
type Repo interface {
	Create(ctx context.Context, jd JobDescription) error
	GetByID(ctx context.Context, jdID string) (JobDescription, error)
	ListByUser(ctx context.Context, userID string) ([]JobDescription, error)
}

package jobdescriptions

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores job descriptions in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]JobDescription
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]JobDescription)}
}

// Create stores the job description.
func (r *MemoryRepo) Create(ctx context.Context, jd JobDescription) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[jd.ID] = jd
	return nil
}

// GetByID returns a job description by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, jdID string) (JobDescription, error) {
	if err := ctx.Err(); err != nil {
		return JobDescription{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	jd, ok := r.byID[jdID]
	if !ok {
		return JobDescription{}, ErrNotFound
	}
	return jd, nil
}

// ListByUser returns a user's job descriptions, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]JobDescription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]JobDescription, 0)
	for _, jd := range r.byID {
		if jd.UserID == userID {
			out = append(out, jd)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)

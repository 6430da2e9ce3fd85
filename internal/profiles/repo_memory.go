package profiles

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	byID     map[string]Profile
	byUserID map[string]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:     make(map[string]Profile),
		byUserID: make(map[string]string),
	}
}

func (r *MemoryRepo) Upsert(ctx context.Context, p Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byID[p.ID]; ok {
		p.Education = existing.Education
		p.Languages = existing.Languages
		p.Skills = existing.Skills
		p.WorkExperiences = existing.WorkExperiences
		p.CreatedAt = existing.CreatedAt
	}
	r.byID[p.ID] = p
	r.byUserID[p.UserID] = p.ID
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return clone(p), nil
}

func (r *MemoryRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUserID[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *MemoryRepo) ReplaceEducation(ctx context.Context, profileID string, items []Education) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[profileID]
	if !ok {
		return 0, ErrNotFound
	}
	p.Education = append([]Education(nil), items...)
	p.UpdatedAt = time.Now().UTC()
	r.byID[profileID] = p
	return len(items), nil
}

func (r *MemoryRepo) ReplaceLanguages(ctx context.Context, profileID string, items []Language) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[profileID]
	if !ok {
		return 0, ErrNotFound
	}
	p.Languages = append([]Language(nil), items...)
	p.UpdatedAt = time.Now().UTC()
	r.byID[profileID] = p
	return len(items), nil
}

func (r *MemoryRepo) ReplaceSkills(ctx context.Context, profileID string, items []Skill) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[profileID]
	if !ok {
		return 0, ErrNotFound
	}
	p.Skills = append([]Skill(nil), items...)
	p.UpdatedAt = time.Now().UTC()
	r.byID[profileID] = p
	return len(items), nil
}

func (r *MemoryRepo) ReplaceWorkExperiences(ctx context.Context, profileID string, items []WorkExperience) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[profileID]
	if !ok {
		return 0, ErrNotFound
	}
	p.WorkExperiences = append([]WorkExperience(nil), items...)
	p.UpdatedAt = time.Now().UTC()
	r.byID[profileID] = p
	return len(items), nil
}

func clone(p Profile) Profile {
	out := p
	out.Education = append([]Education(nil), p.Education...)
	out.Languages = append([]Language(nil), p.Languages...)
	out.Skills = append([]Skill(nil), p.Skills...)
	out.WorkExperiences = append([]WorkExperience(nil), p.WorkExperiences...)
	return out
}

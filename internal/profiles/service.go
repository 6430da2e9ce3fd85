package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvmatch-backend/internal/shared/apperr"
)

// Service owns profile business rules: one profile per user, ownership
// enforcement on sub-collection writes, and order-index assignment.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// ProfileInput is the writable part of the base profile record.
type ProfileInput struct {
	FullName string `json:"fullName"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
}

// Get returns the caller's profile.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	p, err := s.Repo.GetByUserID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return Profile{}, apperr.NotFound("profile not found")
	}
	if err != nil {
		return Profile{}, apperr.Internal("load profile", err)
	}
	return p, nil
}

// Save creates the caller's profile on first write and updates the base
// fields on subsequent writes. Sub-collections are untouched.
func (s *Service) Save(ctx context.Context, userID string, in ProfileInput) (Profile, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return Profile{}, apperr.Validation("fullName is required", map[string]string{"fullName": "required"})
	}

	now := time.Now().UTC()
	p, err := s.Repo.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, ErrNotFound):
		p = Profile{
			ID:        uuid.NewString(),
			UserID:    userID,
			CreatedAt: now,
		}
	case err != nil:
		return Profile{}, apperr.Internal("load profile", err)
	}

	p.FullName = strings.TrimSpace(in.FullName)
	p.Headline = strings.TrimSpace(in.Headline)
	p.Summary = strings.TrimSpace(in.Summary)
	p.UpdatedAt = now

	if err := s.Repo.Upsert(ctx, p); err != nil {
		return Profile{}, apperr.Internal("save profile", err)
	}
	return s.Get(ctx, userID)
}

// authorize resolves profileID and verifies the caller owns it. A missing
// profile is reported before an ownership mismatch, so callers always get
// 404 for ids that do not exist and 403 for ids that belong to someone else.
func (s *Service) authorize(ctx context.Context, userID, profileID string) error {
	if strings.TrimSpace(profileID) == "" {
		return apperr.Validation("profileId is required", map[string]string{"profileId": "required"})
	}
	p, err := s.Repo.GetByID(ctx, profileID)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("profile not found")
	}
	if err != nil {
		return apperr.Internal("load profile", err)
	}
	if p.UserID != userID {
		return apperr.Unauthorized("profile belongs to another user")
	}
	return nil
}

// ReplaceEducation swaps the profile's education entries for the submitted
// list. An empty list clears the collection.
func (s *Service) ReplaceEducation(ctx context.Context, userID, profileID string, items []Education) (int, error) {
	if err := s.authorize(ctx, userID, profileID); err != nil {
		return 0, err
	}
	for i := range items {
		if strings.TrimSpace(items[i].School) == "" {
			return 0, apperr.Validation("school is required", map[string]string{"school": "required"})
		}
		items[i].ID = uuid.NewString()
		items[i].ProfileID = profileID
		items[i].OrderIndex = i
	}
	n, err := s.Repo.ReplaceEducation(ctx, profileID, items)
	if err != nil {
		return 0, apperr.Internal("replace education", err)
	}
	return n, nil
}

func (s *Service) ReplaceLanguages(ctx context.Context, userID, profileID string, items []Language) (int, error) {
	if err := s.authorize(ctx, userID, profileID); err != nil {
		return 0, err
	}
	for i := range items {
		if strings.TrimSpace(items[i].Name) == "" {
			return 0, apperr.Validation("name is required", map[string]string{"name": "required"})
		}
		items[i].ID = uuid.NewString()
		items[i].ProfileID = profileID
	}
	n, err := s.Repo.ReplaceLanguages(ctx, profileID, items)
	if err != nil {
		return 0, apperr.Internal("replace languages", err)
	}
	return n, nil
}

func (s *Service) ReplaceSkills(ctx context.Context, userID, profileID string, items []Skill) (int, error) {
	if err := s.authorize(ctx, userID, profileID); err != nil {
		return 0, err
	}
	for i := range items {
		if strings.TrimSpace(items[i].Name) == "" {
			return 0, apperr.Validation("name is required", map[string]string{"name": "required"})
		}
		items[i].ID = uuid.NewString()
		items[i].ProfileID = profileID
	}
	n, err := s.Repo.ReplaceSkills(ctx, profileID, items)
	if err != nil {
		return 0, apperr.Internal("replace skills", err)
	}
	return n, nil
}

func (s *Service) ReplaceWorkExperiences(ctx context.Context, userID, profileID string, items []WorkExperience) (int, error) {
	if err := s.authorize(ctx, userID, profileID); err != nil {
		return 0, err
	}
	for i := range items {
		if strings.TrimSpace(items[i].Company) == "" {
			return 0, apperr.Validation("company is required", map[string]string{"company": "required"})
		}
		if strings.TrimSpace(items[i].Title) == "" {
			return 0, apperr.Validation("title is required", map[string]string{"title": "required"})
		}
		items[i].ID = uuid.NewString()
		items[i].ProfileID = profileID
		items[i].OrderIndex = i
	}
	n, err := s.Repo.ReplaceWorkExperiences(ctx, profileID, items)
	if err != nil {
		return 0, apperr.Internal("replace work experiences", err)
	}
	return n, nil
}

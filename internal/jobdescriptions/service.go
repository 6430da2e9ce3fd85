package jobdescriptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvmatch-backend/internal/analysis"
	"cvmatch-backend/internal/shared/apperr"
)

// Service contains business logic for job descriptions.
type Service struct {
	Repo     Repo
	Analyses analysis.Repo
}

// ListItem is a job description paired with its most recent analysis job.
type ListItem struct {
	JobDescription
	LatestAnalysis *analysis.Job `json:"latestAnalysis"`
}

// Create validates and stores a new job description for the user.
func (s *Service) Create(ctx context.Context, userID, title, company, description string) (JobDescription, error) {
	if userID == "" {
		return JobDescription{}, errors.New("userID is required")
	}

	var details []map[string]string
	if strings.TrimSpace(title) == "" {
		details = append(details, map[string]string{"field": "title", "issue": "required"})
	}
	if strings.TrimSpace(description) == "" {
		details = append(details, map[string]string{"field": "description", "issue": "required"})
	}
	if len(details) > 0 {
		return JobDescription{}, apperr.Validation("title and description are required", details)
	}

	jd := JobDescription{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Company:     strings.TrimSpace(company),
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, jd); err != nil {
		return JobDescription{}, err
	}
	return jd, nil
}

// List returns the user's job descriptions, newest first, each with its
// latest analysis job when one exists.
func (s *Service) List(ctx context.Context, userID string) ([]ListItem, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}

	jds, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(jds))
	for _, jd := range jds {
		ids = append(ids, jd.ID)
	}

	latest := map[string]analysis.Job{}
	if s.Analyses != nil && len(ids) > 0 {
		latest, err = s.Analyses.LatestByJobDescription(ctx, userID, ids)
		if err != nil {
			return nil, err
		}
	}

	items := make([]ListItem, 0, len(jds))
	for _, jd := range jds {
		item := ListItem{JobDescription: jd}
		if job, ok := latest[jd.ID]; ok {
			jobCopy := job
			item.LatestAnalysis = &jobCopy
		}
		items = append(items, item)
	}
	return items, nil
}

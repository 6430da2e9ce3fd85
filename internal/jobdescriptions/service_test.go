package jobdescriptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"cvmatch-backend/internal/analysis"
	"cvmatch-backend/internal/shared/apperr"
)

func TestCreateValidation(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	_, err := svc.Create(context.Background(), "user-1", "  ", "Acme", "")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := appErr.Details.([]map[string]string)
	if !ok || len(details) != 2 {
		t.Fatalf("expected two field details, got %v", appErr.Details)
	}
}

func TestCreateStoresTrimmedFields(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	jd, err := svc.Create(context.Background(), "user-1", "  Backend Engineer ", " Acme ", "Build Go services")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if jd.Title != "Backend Engineer" || jd.Company != "Acme" {
		t.Fatalf("expected trimmed fields, got %q / %q", jd.Title, jd.Company)
	}
	if jd.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestListPairsLatestAnalysis(t *testing.T) {
	jdRepo := NewMemoryRepo()
	anRepo := analysis.NewMemoryRepo()
	svc := &Service{Repo: jdRepo, Analyses: anRepo}

	jd, err := svc.Create(context.Background(), "user-1", "Backend Engineer", "Acme", "Build Go services")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := svc.Create(context.Background(), "user-1", "Data Engineer", "Acme", "Pipelines")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	older := analysis.Job{
		ID: "aaaaaaaa-0000-0000-0000-000000000001", UserID: "user-1", JobDescriptionID: jd.ID,
		JobDescriptionText: jd.Description, Status: analysis.StatusCompleted, MatchScore: 60,
		Strengths: []string{}, Gaps: []string{}, MissingSkills: []string{}, SuggestedFocusAreas: []string{},
		CreatedAt: time.Now().UTC().Add(-time.Hour), UpdatedAt: time.Now().UTC().Add(-time.Hour),
	}
	newer := older
	newer.ID = "aaaaaaaa-0000-0000-0000-000000000002"
	newer.MatchScore = 85
	newer.CreatedAt = time.Now().UTC()
	newer.UpdatedAt = newer.CreatedAt
	if err := anRepo.Create(context.Background(), older); err != nil {
		t.Fatalf("seed older: %v", err)
	}
	if err := anRepo.Create(context.Background(), newer); err != nil {
		t.Fatalf("seed newer: %v", err)
	}

	items, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	byID := map[string]ListItem{}
	for _, item := range items {
		byID[item.ID] = item
	}
	withAnalysis := byID[jd.ID]
	if withAnalysis.LatestAnalysis == nil {
		t.Fatalf("expected latest analysis attached")
	}
	if withAnalysis.LatestAnalysis.MatchScore != 85 {
		t.Fatalf("expected newest analysis, got score %d", withAnalysis.LatestAnalysis.MatchScore)
	}
	if byID[other.ID].LatestAnalysis != nil {
		t.Fatalf("expected no analysis for unanalyzed job description")
	}
}

func TestListIsOwnerScoped(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	if _, err := svc.Create(context.Background(), "user-1", "Backend Engineer", "", "desc"); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := svc.List(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list for other user, got %d", len(items))
	}
}

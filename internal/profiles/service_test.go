package profiles

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cvmatch-backend/internal/shared/apperr"
)

func seedProfile(t *testing.T, svc *Service, userID string) Profile {
	t.Helper()
	p, err := svc.Save(context.Background(), userID, ProfileInput{
		FullName: "Ada Example",
		Headline: "Backend engineer",
		Summary:  "Ten years of Go.",
	})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return p
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	created := seedProfile(t, svc, "user-1")
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	updated, err := svc.Save(context.Background(), "user-1", ProfileInput{FullName: "Ada B. Example"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected stable profile id, got %q then %q", created.ID, updated.ID)
	}
	if updated.FullName != "Ada B. Example" {
		t.Fatalf("expected updated name, got %q", updated.FullName)
	}
}

func TestSaveRequiresFullName(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.Save(context.Background(), "user-1", ProfileInput{FullName: "   "})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReplaceEducationAssignsOrder(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	p := seedProfile(t, svc, "user-1")

	items := []Education{
		{School: "MIT", Degree: "BSc"},
		{School: "Stanford", Degree: "MSc"},
		{School: "Berkeley"},
	}
	n, err := svc.ReplaceEducation(context.Background(), "user-1", p.ID, items)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected count 3, got %d", n)
	}

	stored, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Education) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(stored.Education))
	}
	for i, e := range stored.Education {
		if e.OrderIndex != i {
			t.Fatalf("entry %d: expected order %d, got %d", i, i, e.OrderIndex)
		}
		if e.ID == "" || e.ProfileID != p.ID {
			t.Fatalf("entry %d missing identity fields: %+v", i, e)
		}
	}
}

func TestReplaceWithEmptyListClears(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	p := seedProfile(t, svc, "user-1")

	if _, err := svc.ReplaceSkills(context.Background(), "user-1", p.ID, []Skill{{Name: "Go"}, {Name: "SQL"}}); err != nil {
		t.Fatalf("seed skills: %v", err)
	}

	n, err := svc.ReplaceSkills(context.Background(), "user-1", p.ID, nil)
	if err != nil {
		t.Fatalf("clear skills: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected count 0, got %d", n)
	}

	stored, _ := svc.Get(context.Background(), "user-1")
	if len(stored.Skills) != 0 {
		t.Fatalf("expected skills cleared, got %d", len(stored.Skills))
	}
}

func TestReplaceEnforcesOwnership(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	p := seedProfile(t, svc, "user-1")

	_, err := svc.ReplaceLanguages(context.Background(), "user-2", p.ID, []Language{{Name: "English"}})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized for foreign profile, got %v", err)
	}

	_, err = svc.ReplaceLanguages(context.Background(), "user-1", "55555555-5555-5555-5555-555555555555", []Language{{Name: "English"}})
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Fatalf("expected not found for unknown profile, got %v", err)
	}
}

func TestReplaceWorkExperiencesValidatesEntries(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	p := seedProfile(t, svc, "user-1")

	_, err := svc.ReplaceWorkExperiences(context.Background(), "user-1", p.ID, []WorkExperience{
		{Company: "Acme", Title: ""},
	})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRenderTextIncludesSections(t *testing.T) {
	end := "2023-01"
	prof := "fluent"
	p := Profile{
		FullName: "Ada Example",
		Headline: "Backend engineer",
		Summary:  "Builds Go services.",
		WorkExperiences: []WorkExperience{
			{Company: "Acme", Title: "Engineer", StartDate: "2020-02", EndDate: &end},
		},
		Education: []Education{{School: "MIT", Degree: "BSc"}},
		Skills:    []Skill{{Name: "Go"}, {Name: "Postgres"}},
		Languages: []Language{{Name: "English", Proficiency: &prof}},
	}

	text := RenderText(p)
	for _, want := range []string{
		"Ada Example - Backend engineer",
		"Engineer at Acme (2020-02 to 2023-01)",
		"MIT, BSc",
		"Skills: Go, Postgres",
		"English (fluent)",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in rendered text:\n%s", want, text)
		}
	}
}

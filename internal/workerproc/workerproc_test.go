package workerproc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cvmatch-backend/internal/analysis"
	"cvmatch-backend/internal/matcher"
	"cvmatch-backend/internal/profiles"
	"cvmatch-backend/internal/queue"
)

func TestParseMessage(t *testing.T) {
	valid, _ := json.Marshal(queue.Message{
		AnalysisID:         "job-1",
		UserID:             "user-1",
		JobDescriptionText: "jd",
		Version:            1,
	})

	cases := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"valid", string(valid), nil},
		{"empty", "", ErrEmptyBody},
		{"garbage", "{not json", ErrDecode},
		{"missing id", `{"userId":"user-1","version":1}`, ErrMissingAnalysisID},
	}
	for _, tc := range cases {
		msg, err := ParseMessage(tc.body)
		if tc.wantErr == nil {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			if msg.AnalysisID != "job-1" {
				t.Fatalf("%s: unexpected message %+v", tc.name, msg)
			}
			continue
		}
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
		if !Unrecoverable(err) {
			t.Fatalf("%s: parse failures must be unrecoverable", tc.name)
		}
	}
}

type staticMatcher struct {
	result matcher.Result
}

func (m staticMatcher) Match(ctx context.Context, input matcher.Input) (matcher.Result, error) {
	return m.result, nil
}

type dropQueue struct{}

func (dropQueue) Send(ctx context.Context, msg queue.Message) error { return nil }

func TestHandleMessageRunsAnalysis(t *testing.T) {
	anRepo := analysis.NewMemoryRepo()
	svc := &analysis.Service{Repo: anRepo, Queue: dropQueue{}}

	profRepo := profiles.NewMemoryRepo()
	if err := profRepo.Upsert(context.Background(), profiles.Profile{
		ID: "profile-1", UserID: "user-1", FullName: "Ada Example",
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	now := time.Now().UTC()
	job := analysis.Job{
		ID: "job-1", UserID: "user-1", JobDescriptionText: "Go engineer",
		Status:    analysis.StatusProcessing,
		Strengths: []string{}, Gaps: []string{}, MissingSkills: []string{}, SuggestedFocusAreas: []string{},
		CreatedAt: now, UpdatedAt: now,
	}
	if err := anRepo.Create(context.Background(), job); err != nil {
		t.Fatalf("seed job: %v", err)
	}

	proc := analysis.NewProcessor(svc, profRepo, staticMatcher{result: matcher.Result{
		MatchScore: 70, Strengths: []string{"Go"}, Gaps: []string{}, MissingSkills: []string{}, SuggestedFocusAreas: []string{},
	}})

	body, _ := json.Marshal(queue.Message{AnalysisID: "job-1", UserID: "user-1", Version: 1})
	if err := HandleMessage(context.Background(), proc, string(body)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	stored, err := anRepo.GetByID(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != analysis.StatusCompleted || stored.MatchScore != 70 {
		t.Fatalf("expected completed with score 70, got %q %d", stored.Status, stored.MatchScore)
	}
}

func TestHandleMessageUnknownJobIsUnrecoverable(t *testing.T) {
	anRepo := analysis.NewMemoryRepo()
	svc := &analysis.Service{Repo: anRepo, Queue: dropQueue{}}
	proc := analysis.NewProcessor(svc, profiles.NewMemoryRepo(), staticMatcher{})

	body, _ := json.Marshal(queue.Message{AnalysisID: "job-missing", Version: 1})
	err := HandleMessage(context.Background(), proc, string(body))
	if err == nil {
		t.Fatalf("expected error for unknown job")
	}
	if !Unrecoverable(err) {
		t.Fatalf("unknown job must be unrecoverable, got %v", err)
	}
}

package matcher

import (
	"context"
	"errors"
)

// Client abstracts the AI comparison of a candidate profile against a job
// description. The orchestration layer treats it as an opaque collaborator.
type Client interface {
	Match(ctx context.Context, input Input) (Result, error)
}

// Input carries the rendered candidate profile and the job description text.
type Input struct {
	ProfileText    string
	JobDescription string
}

// Result is the structured outcome of one comparison.
type Result struct {
	MatchScore          int      `json:"matchScore"`
	Strengths           []string `json:"strengths"`
	Gaps                []string `json:"gaps"`
	MissingSkills       []string `json:"missingSkills"`
	SuggestedFocusAreas []string `json:"suggestedFocusAreas"`
}

// ErrInvalidResult indicates the provider returned output that does not fit
// the result schema. It is not retryable.
var ErrInvalidResult = errors.New("matcher result invalid")

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("matcher not configured")

// PlaceholderClient is a stub implementation for unconfigured environments.
type PlaceholderClient struct{}

// Match returns ErrNotConfigured.
func (PlaceholderClient) Match(ctx context.Context, input Input) (Result, error) {
	_ = ctx
	_ = input
	return Result{}, ErrNotConfigured
}

// Validate checks a result against the schema bounds.
func Validate(r Result) error {
	if r.MatchScore < 0 || r.MatchScore > 100 {
		return ErrInvalidResult
	}
	return nil
}

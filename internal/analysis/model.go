package analysis

import "time"

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Failure reason codes stored on a failed job.
const (
	FailureCodeDispatch         = "DISPATCH_FAILURE"
	FailureCodeRetriesExhausted = "RETRIES_EXHAUSTED"
	FailureCodeProfileNotFound  = "PROFILE_NOT_FOUND"
	FailureCodeSchemaMismatch   = "RESULT_SCHEMA_MISMATCH"
)

// Job is a durable record tracking one asynchronous comparison of a profile
// against a job description. Result fields are write-once: they are populated
// atomically with the single transition out of StatusProcessing.
type Job struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"userId"`
	JobDescriptionID    string     `json:"jobDescriptionId,omitempty"`
	JobDescriptionText  string     `json:"jobDescriptionText,omitempty"`
	Status              string     `json:"status"`
	MatchScore          int        `json:"matchScore"`
	Strengths           []string   `json:"strengths"`
	Gaps                []string   `json:"gaps"`
	MissingSkills       []string   `json:"missingSkills"`
	SuggestedFocusAreas []string   `json:"suggestedFocusAreas"`
	FailureCode         string     `json:"failureCode,omitempty"`
	FailureMessage      string     `json:"failureMessage,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	StartedAt           *time.Time `json:"startedAt,omitempty"`
	CompletedAt         *time.Time `json:"completedAt,omitempty"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// Result carries the terminal fields written on completion.
type Result struct {
	MatchScore          int      `json:"matchScore"`
	Strengths           []string `json:"strengths"`
	Gaps                []string `json:"gaps"`
	MissingSkills       []string `json:"missingSkills"`
	SuggestedFocusAreas []string `json:"suggestedFocusAreas"`
}

// Terminal reports whether the status is completed or failed.
func Terminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}

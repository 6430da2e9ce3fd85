package analysis

import (
	"context"
	"errors"
	"sync"

	"cvmatch-backend/internal/matcher"
	"cvmatch-backend/internal/queue"
)

// stubQueue records sent messages and optionally fails every Send.
type stubQueue struct {
	mu       sync.Mutex
	messages []queue.Message
	sendErr  error
}

func (q *stubQueue) Send(ctx context.Context, msg queue.Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, msg)
	return q.sendErr
}

func (q *stubQueue) sent() []queue.Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]queue.Message(nil), q.messages...)
}

// stubJDSource serves job description records from a map.
type stubJDSource struct {
	records map[string]JobDescriptionRecord
}

func (s *stubJDSource) GetByID(ctx context.Context, jdID string) (JobDescriptionRecord, error) {
	rec, ok := s.records[jdID]
	if !ok {
		return JobDescriptionRecord{}, ErrJobDescriptionNotFound
	}
	return rec, nil
}

// scriptedMatcher returns its outcomes in order, then repeats the last one.
type scriptedMatcher struct {
	mu       sync.Mutex
	outcomes []matcherOutcome
	calls    int
}

type matcherOutcome struct {
	result matcher.Result
	err    error
}

func (m *scriptedMatcher) Match(ctx context.Context, input matcher.Input) (matcher.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.outcomes) == 0 {
		return matcher.Result{}, errors.New("no scripted outcome")
	}
	idx := m.calls
	if idx >= len(m.outcomes) {
		idx = len(m.outcomes) - 1
	}
	m.calls++
	out := m.outcomes[idx]
	return out.result, out.err
}

func (m *scriptedMatcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func goodResult() matcher.Result {
	return matcher.Result{
		MatchScore:          82,
		Strengths:           []string{"Go services"},
		Gaps:                []string{"Kubernetes"},
		MissingSkills:       []string{"Terraform"},
		SuggestedFocusAreas: []string{"infrastructure"},
	}
}

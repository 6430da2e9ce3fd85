// Package workerproc turns raw queue payloads into analysis executions.
package workerproc

import (
	"context"
	"errors"
	"fmt"

	"cvmatch-backend/internal/analysis"
	"cvmatch-backend/internal/queue"
	"cvmatch-backend/internal/shared/metrics"
	"cvmatch-backend/internal/shared/telemetry"
)

var (
	// ErrEmptyBody indicates a message with no payload. Not retryable.
	ErrEmptyBody = errors.New("empty message body")
	// ErrDecode indicates a payload that is not a valid task message. Not retryable.
	ErrDecode = errors.New("decode message")
	// ErrMissingAnalysisID indicates a task without a target job. Not retryable.
	ErrMissingAnalysisID = errors.New("message missing analysisId")
	// ErrProcess wraps failures that occurred while running the analysis.
	ErrProcess = errors.New("process analysis")
)

// ParseMessage validates and decodes a raw queue payload.
func ParseMessage(body string) (queue.Message, error) {
	if body == "" {
		return queue.Message{}, ErrEmptyBody
	}
	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if msg.AnalysisID == "" {
		return queue.Message{}, ErrMissingAnalysisID
	}
	return msg, nil
}

// Unrecoverable reports whether an error means the message can never be
// processed and should be removed from the queue instead of redelivered.
func Unrecoverable(err error) bool {
	return errors.Is(err, ErrEmptyBody) ||
		errors.Is(err, ErrDecode) ||
		errors.Is(err, ErrMissingAnalysisID) ||
		errors.Is(err, analysis.ErrNotFound)
}

// HandleMessage parses one queue payload and runs the analysis it names.
func HandleMessage(ctx context.Context, proc *analysis.Processor, body string) error {
	metrics.IncTasksReceived()

	msg, err := ParseMessage(body)
	if err != nil {
		metrics.IncTasksDroppedUnreadable()
		telemetry.Warn("worker.message_unreadable", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	taskCtx := analysis.WithRequestID(ctx, msg.RequestID)
	telemetry.Info("worker.task_received", map[string]any{
		"request_id":  msg.RequestID,
		"analysis_id": msg.AnalysisID,
		"user_id":     msg.UserID,
	})

	if err := proc.ProcessAnalysis(taskCtx, msg.AnalysisID); err != nil {
		return fmt.Errorf("%w: %w", ErrProcess, err)
	}
	return nil
}

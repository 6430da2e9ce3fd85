package queue

import (
	"context"

	"cvmatch-backend/internal/shared/telemetry"
)

// LocalClient dispatches tasks in-process. It stands in for SQS in
// development environments with no queue configured: Send hands the message
// to Handle on a new goroutine and returns immediately.
type LocalClient struct {
	Handle func(ctx context.Context, msg Message)
}

func (l *LocalClient) Send(ctx context.Context, msg Message) error {
	telemetry.Info("queue.local_dispatch", map[string]any{
		"analysis_id": msg.AnalysisID,
	})
	if l.Handle != nil {
		go l.Handle(context.Background(), msg)
	}
	return nil
}

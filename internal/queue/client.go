package queue

import "context"

// Client sends task messages to a queue backend. Implementations must not be
// reached through global state; the orchestrator receives one at construction.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

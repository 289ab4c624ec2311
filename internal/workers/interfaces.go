// Package workers runs the agent's background components as one unit.
//
// Workers are started in registration order and stopped in reverse, so a
// component that depends on another is stopped first.
package workers

import "context"

// Worker is a background component with an explicit lifecycle.
//
// Start must not block; long-running work belongs in a goroutine the worker
// owns. Stop must wait for that goroutine and be safe to call more than once.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-configur/models"
)

// SyncService runs fetch-decrypt-merge cycles for one application.
type SyncService interface {
	// RunCycle performs one refresh cycle. Cycles are serialized; a failed
	// cycle leaves the settings store untouched and returns the stage error.
	RunCycle(ctx context.Context, trigger models.CycleTrigger) error

	// Status reports the refresh state. It never contains setting values.
	Status() models.RefreshStatus

	// Close cancels the active push subscription, if any.
	Close()
}

// SyncJob schedules cycles: one on every tick of the refresh timer and one
// for each accepted invalidation.
type SyncJob interface {
	// Start launches the scheduler goroutine. A non-positive interval means
	// five minutes. A running scheduler is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Invalidate asks for an unscheduled cycle. It never blocks. It returns
	// false when the request was merged into a cycle that is already queued
	// or running.
	Invalidate(trigger models.CycleTrigger) bool

	// Stop stops the scheduler and waits for an in-progress cycle to finish.
	Stop()
}

// PushSubscriber keeps a subscription to the server's invalidation channel.
type PushSubscriber interface {
	// Subscribe starts listening on channel in the background and calls
	// onInvalidate for every invalidation event. Connection problems are
	// logged and retried, never returned.
	Subscribe(ctx context.Context, channel models.PushChannel, onInvalidate func()) PushHandle
}

// PushHandle controls one subscription.
type PushHandle interface {
	// Cancel stops the subscription and waits for its goroutine to exit. It
	// is safe to call while a connection attempt is in flight and more than
	// once.
	Cancel()
}

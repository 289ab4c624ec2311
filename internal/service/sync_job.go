package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/models"
)

// DefaultRefreshInterval is used when no positive interval is configured.
const DefaultRefreshInterval = 5 * time.Minute

type syncJob struct {
	syncService SyncService

	// triggers is the single-slot queue of unscheduled cycles.
	triggers chan models.CycleTrigger
	// pending is set while an unscheduled cycle is queued or running.
	pending *atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSyncJob creates the scheduler for syncService. The job is idle until
// Start is called; invalidations received before that wait in the queue.
func NewSyncJob(syncService SyncService, log *logger.Logger) SyncJob {
	return &syncJob{
		syncService: syncService,
		triggers:    make(chan models.CycleTrigger, 1),
		pending:     atomic.NewBool(false),
		logger:      log,
	}
}

// Start implements [SyncJob].
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.run(jobCtx, models.TriggerSchedule)
			case trigger := <-j.triggers:
				j.run(jobCtx, trigger)
				// An Invalidate that lands between RunCycle returning and this
				// store sees the slot taken and reports false; it raced the
				// end of the cycle and counts as merged into it. The next
				// tick covers it.
				j.pending.Store(false)
			}
		}
	}()

	j.logger.Info().Dur("interval", interval).Msg("refresh scheduler started")
}

// run executes one cycle on a context that ignores Stop, so a cycle that has
// started always completes.
func (j *syncJob) run(ctx context.Context, trigger models.CycleTrigger) {
	// failures are logged by the sync service
	_ = j.syncService.RunCycle(context.WithoutCancel(ctx), trigger)
}

// Invalidate implements [SyncJob].
func (j *syncJob) Invalidate(trigger models.CycleTrigger) bool {
	if !j.pending.CompareAndSwap(false, true) {
		j.logger.Debug().Str("trigger", string(trigger)).Msg("refresh already pending, invalidation coalesced")
		return false
	}

	select {
	case j.triggers <- trigger:
		return true
	default:
		// unreachable while pending guards the slot
		return false
	}
}

// Stop implements [SyncJob]. Safe to call when the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

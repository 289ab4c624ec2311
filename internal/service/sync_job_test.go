// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/models"
)

// spySyncService counts RunCycle calls per trigger. When gate is set, every
// call blocks until the gate is closed.
type spySyncService struct {
	calls     atomic.Int64
	cancelled atomic.Bool
	started   chan struct{}
	gate      chan struct{}

	mu       sync.Mutex
	triggers []models.CycleTrigger
}

func (s *spySyncService) RunCycle(ctx context.Context, trigger models.CycleTrigger) error {
	s.calls.Add(1)
	s.mu.Lock()
	s.triggers = append(s.triggers, trigger)
	s.mu.Unlock()

	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.gate != nil {
		<-s.gate
	}
	if ctx.Err() != nil {
		s.cancelled.Store(true)
	}
	return ctx.Err()
}

func (s *spySyncService) Status() models.RefreshStatus { return models.RefreshStatus{} }

func (s *spySyncService) Close() {}

func (s *spySyncService) seen() []models.CycleTrigger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CycleTrigger(nil), s.triggers...)
}

// ── NewSyncJob ───────────────────────────────────────────────────────────────

func TestNewSyncJob_ReturnsInterface(t *testing.T) {
	job := NewSyncJob(&spySyncService{}, logger.Nop())
	require.NotNil(t, job)

	var _ SyncJob = job
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestSyncJob_Start_RunsOnTicks(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "RunCycle called %d times", got)
	for _, tr := range spy.seen() {
		assert.Equal(t, models.TriggerSchedule, tr)
	}
}

func TestSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no cycles after Stop")
}

func TestSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewSyncJob(&spySyncService{}, logger.Nop())
	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_Stop_Twice_NoPanic(t *testing.T) {
	job := NewSyncJob(&spySyncService{}, logger.Nop())
	job.Start(context.Background(), time.Hour)

	assert.NotPanics(t, func() {
		job.Stop()
		job.Stop()
	})
}

func TestSyncJob_ContextCancel_StopsJob(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	callsAfterCancel := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterCancel, spy.calls.Load())

	job.Stop()
}

func TestSyncJob_Start_Restart(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(35 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(1))
}

func TestSyncJob_Stop_WaitsForRunningCycle(t *testing.T) {
	spy := &spySyncService{started: make(chan struct{}, 1), gate: make(chan struct{})}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), time.Hour)
	require.True(t, job.Invalidate(models.TriggerManual))
	<-spy.started

	stopped := make(chan struct{})
	go func() {
		job.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a cycle was running")
	case <-time.After(30 * time.Millisecond):
	}

	close(spy.gate)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the cycle finished")
	}
}

func TestSyncJob_CycleContextIgnoresStop(t *testing.T) {
	spy := &spySyncService{started: make(chan struct{}, 1), gate: make(chan struct{})}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), time.Hour)
	job.Invalidate(models.TriggerManual)
	<-spy.started

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(spy.gate)
	}()
	job.Stop()

	assert.Equal(t, int64(1), spy.calls.Load())
	assert.False(t, spy.cancelled.Load(), "cycle context must survive Stop")
}

// ── Invalidate ───────────────────────────────────────────────────────────────

func TestSyncJob_Invalidate_RunsUnscheduledCycle(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), time.Hour)
	defer job.Stop()

	assert.True(t, job.Invalidate(models.TriggerPush))
	assert.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []models.CycleTrigger{models.TriggerPush}, spy.seen())
}

func TestSyncJob_Invalidate_BackToBackCoalesce(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy, logger.Nop())

	// queued before the scheduler runs, so both land on the same slot
	assert.True(t, job.Invalidate(models.TriggerPush))
	assert.False(t, job.Invalidate(models.TriggerPush))

	job.Start(context.Background(), time.Hour)
	defer job.Stop()

	assert.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(1), spy.calls.Load(), "exactly one extra cycle")
}

func TestSyncJob_Invalidate_CoalescedIntoRunningCycle(t *testing.T) {
	spy := &spySyncService{started: make(chan struct{}, 1), gate: make(chan struct{})}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), time.Hour)
	defer job.Stop()

	require.True(t, job.Invalidate(models.TriggerManual))
	<-spy.started

	assert.False(t, job.Invalidate(models.TriggerPush))
	close(spy.gate)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(1), spy.calls.Load())

	// the slot is free again once the cycle finished
	assert.True(t, job.Invalidate(models.TriggerPush))
	assert.Eventually(t, func() bool { return spy.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestSyncJob_Invalidate_NeverBlocks(t *testing.T) {
	job := NewSyncJob(&spySyncService{}, logger.Nop())

	done := make(chan struct{})
	go func() {
		for range 100 {
			job.Invalidate(models.TriggerPush)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Invalidate blocked")
	}
}

func TestSyncJob_Invalidate_AcceptedEqualsCyclesUnderContention(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), time.Hour)
	defer job.Stop()

	var accepted atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				if job.Invalidate(models.TriggerPush) {
					accepted.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	// every accepted invalidation runs exactly one cycle
	assert.Eventually(t, func() bool { return spy.calls.Load() == accepted.Load() }, time.Second, 5*time.Millisecond)

	// and the slot is never left taken
	assert.Eventually(t, func() bool { return job.Invalidate(models.TriggerManual) }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return spy.calls.Load() == accepted.Load()+1 }, time.Second, 5*time.Millisecond)
}

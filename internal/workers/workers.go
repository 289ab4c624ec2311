package workers

import (
	"context"
	"sync"
)

type Workers struct {
	mu      sync.Mutex
	workers []Worker
	started int
}

func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start starts every worker in order.
func (w *Workers) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, worker := range w.workers[w.started:] {
		worker.Start(ctx)
		w.started++
	}
}

// Stop stops the started workers in reverse order.
func (w *Workers) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := w.started - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
	w.started = 0
}

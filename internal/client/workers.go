package client

import (
	"context"
	"time"

	"github.com/MKhiriev/go-configur/internal/server"
	"github.com/MKhiriev/go-configur/internal/service"
)

// syncWorker runs the refresh scheduler as a worker.
type syncWorker struct {
	job      service.SyncJob
	interval time.Duration
}

func (w *syncWorker) Start(ctx context.Context) { w.job.Start(ctx, w.interval) }
func (w *syncWorker) Stop()                     { w.job.Stop() }

// serverWorker runs the admin server as a worker.
type serverWorker struct {
	server server.Server
	done   chan struct{}
}

func (w *serverWorker) Start(context.Context) {
	w.done = make(chan struct{})
	go func() {
		defer close(w.done)
		w.server.RunServer()
	}()
}

func (w *serverWorker) Stop() {
	if w.done == nil {
		return
	}
	w.server.Shutdown()
	<-w.done
	w.done = nil
}

package server

import (
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-configur/internal/config"
	"github.com/MKhiriev/go-configur/internal/handler"
	handlerhttp "github.com/MKhiriev/go-configur/internal/handler/http"
	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/internal/service"
)

type noKeys struct{}

func (noKeys) Keys() []string { return nil }

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().String()
}

func TestNewServer_NothingToServe(t *testing.T) {
	_, err := NewServer(nil, config.Admin{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)

	_, err = NewServer(&handler.Handlers{}, config.Admin{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestServer_RunAndShutdown(t *testing.T) {
	addr := freeAddress(t)
	h := &handler.Handlers{HTTP: handlerhttp.NewHandler(&service.Services{}, noKeys{}, "9.9.9", logger.Nop())}

	srv, err := NewServer(h, config.Admin{HTTPAddress: addr}, logger.Nop())
	require.NoError(t, err)

	stopped := make(chan struct{})
	go func() {
		srv.RunServer()
		close(stopped)
	}()

	url := fmt.Sprintf("http://%s/api/version", addr)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	srv.Shutdown()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("RunServer did not return after Shutdown")
	}
}

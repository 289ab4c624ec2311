package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/models"
)

// fakeHub is a minimal SignalR JSON hub. After the handshake it writes every
// value sent on frames to the client.
type fakeHub struct {
	t        *testing.T
	srv      *httptest.Server
	frames   chan string
	redirect string

	// handshakeTail is sent in the same frame as the handshake reply
	handshakeTail string

	mu          sync.Mutex
	negotiated  []string // Authorization headers seen by negotiate
	connectURLs []string
	handshakeOK bool
}

func newFakeHub(t *testing.T) *fakeHub {
	t.Helper()
	h := &fakeHub{t: t, frames: make(chan string, 8)}

	upgrader := websocket.Upgrader{}
	r := chi.NewRouter()
	r.Post("/hub/negotiate", func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		h.negotiated = append(h.negotiated, r.Header.Get("Authorization"))
		h.mu.Unlock()
		assert.Equal(t, "1", r.URL.Query().Get("negotiateVersion"))

		if h.redirect != "" {
			_ = json.NewEncoder(w).Encode(negotiateResponse{URL: h.redirect, AccessToken: "redirected"})
			return
		}
		_ = json.NewEncoder(w).Encode(negotiateResponse{
			ConnectionID:     "conn-id",
			ConnectionToken:  "conn-token",
			NegotiateVersion: 1,
		})
	})
	r.Get("/hub", func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		h.connectURLs = append(h.connectURLs, r.URL.String())
		h.mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.mu.Lock()
		h.handshakeOK = bytes.Equal(data, handshakeRequest)
		h.mu.Unlock()
		_ = conn.WriteMessage(websocket.TextMessage, []byte(record("{}")+h.handshakeTail))

		// drain client frames (pings, close) in the background
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for frame := range h.frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
	})

	h.srv = httptest.NewServer(r)
	t.Cleanup(func() {
		close(h.frames)
		h.srv.Close()
	})
	return h
}

func (h *fakeHub) channel() models.PushChannel {
	return models.PushChannel{URL: h.srv.URL + "/hub", AccessToken: "t"}
}

func record(v string) string {
	return v + string(rune(recordSeparator))
}

func TestHubConnector_ConnectAndReceiveInvocation(t *testing.T) {
	hub := newFakeHub(t)
	c := NewHubConnector(time.Second, logger.Nop())

	stream, err := c.Connect(context.Background(), hub.channel())
	require.NoError(t, err)
	defer stream.Close()

	hub.frames <- record(`{"type":6}`) + record(`{"type":1,"target":"ValuablesDeposited","arguments":["vault-1"]}`)

	got := make(chan Invocation, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- stream.Listen(ctx, func(inv Invocation) { got <- inv })
	}()

	select {
	case inv := <-got:
		assert.Equal(t, "ValuablesDeposited", inv.Target)
		require.Len(t, inv.Arguments, 1)
		assert.JSONEq(t, `"vault-1"`, string(inv.Arguments[0]))
	case <-time.After(2 * time.Second):
		t.Fatal("invocation not delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return after cancel")
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	assert.True(t, hub.handshakeOK)
	assert.Equal(t, []string{"Bearer t"}, hub.negotiated)
	require.Len(t, hub.connectURLs, 1)
	assert.Contains(t, hub.connectURLs[0], "id=conn-token")
	assert.Contains(t, hub.connectURLs[0], "access_token=t")
}

func TestHubConnector_CloseMessage(t *testing.T) {
	hub := newFakeHub(t)
	stream, err := NewHubConnector(time.Second, logger.Nop()).Connect(context.Background(), hub.channel())
	require.NoError(t, err)
	defer stream.Close()

	hub.frames <- record(`{"type":7,"error":"server shutting down"}`)

	err = stream.Listen(context.Background(), func(Invocation) {})

	assert.ErrorIs(t, err, ErrHubClosed)
	assert.Contains(t, err.Error(), "server shutting down")
}

func TestHubConnector_NegotiateRedirect(t *testing.T) {
	target := newFakeHub(t)
	front := newFakeHub(t)
	front.redirect = target.srv.URL + "/hub"

	stream, err := NewHubConnector(time.Second, logger.Nop()).Connect(context.Background(), front.channel())
	require.NoError(t, err)
	defer stream.Close()

	target.mu.Lock()
	defer target.mu.Unlock()
	assert.Equal(t, []string{"Bearer redirected"}, target.negotiated)
	require.Len(t, target.connectURLs, 1)
	assert.Contains(t, target.connectURLs[0], "access_token=redirected")
}

func TestHubConnector_NegotiateFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewHubConnector(time.Second, logger.Nop()).
		Connect(context.Background(), models.PushChannel{URL: srv.URL + "/hub", AccessToken: "bad"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "negotiate")
}

func TestHubConnector_EmptyChannel(t *testing.T) {
	_, err := NewHubConnector(time.Second, logger.Nop()).Connect(context.Background(), models.PushChannel{})
	assert.Error(t, err)
}

func TestHubConnector_ConnectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHubConnector(time.Second, logger.Nop()).
		Connect(ctx, models.PushChannel{URL: "https://127.0.0.1:1/hub"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "negotiate"))
}

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		nr       negotiateResponse
		token    string
		want     string
	}{
		{
			name:     "wss with token",
			endpoint: "wss://x/hub",
			nr:       negotiateResponse{ConnectionToken: "ct", ConnectionID: "ci", NegotiateVersion: 1},
			token:    "t",
			want:     "wss://x/hub?access_token=t&id=ct",
		},
		{
			name:     "http maps to ws",
			endpoint: "http://localhost:5000/hub",
			nr:       negotiateResponse{ConnectionID: "ci"},
			want:     "ws://localhost:5000/hub?id=ci",
		},
		{
			name:     "https maps to wss",
			endpoint: "https://push.configur.it/hubs/valuables",
			nr:       negotiateResponse{ConnectionID: "ci", ConnectionToken: "ct", NegotiateVersion: 1},
			want:     "wss://push.configur.it/hubs/valuables?id=ct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := websocketURL(tt.endpoint, tt.nr, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPURL_RejectsUnknownScheme(t *testing.T) {
	_, err := httpURL("ftp://x/hub")
	assert.Error(t, err)
}

func TestHubConnector_InvocationBatchedWithHandshake(t *testing.T) {
	hub := newFakeHub(t)
	hub.handshakeTail = record(`{"type":1,"target":"ValuablesDeposited","arguments":["vault-1"]}`)
	c := NewHubConnector(time.Second, logger.Nop())

	stream, err := c.Connect(context.Background(), hub.channel())
	require.NoError(t, err)
	defer stream.Close()

	got := make(chan Invocation, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = stream.Listen(ctx, func(inv Invocation) { got <- inv })
	}()

	select {
	case inv := <-got:
		assert.Equal(t, "ValuablesDeposited", inv.Target)
	case <-time.After(2 * time.Second):
		t.Fatal("invocation from the handshake frame was not delivered")
	}
}

func TestHubConnector_CloseBatchedWithHandshake(t *testing.T) {
	hub := newFakeHub(t)
	hub.handshakeTail = record(`{"type":7,"error":"going away"}`)
	c := NewHubConnector(time.Second, logger.Nop())

	stream, err := c.Connect(context.Background(), hub.channel())
	require.NoError(t, err)
	defer stream.Close()

	err = stream.Listen(context.Background(), func(Invocation) {})
	assert.ErrorIs(t, err, ErrHubClosed)
	assert.Contains(t, err.Error(), "going away")
}

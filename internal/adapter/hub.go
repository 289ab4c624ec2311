package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/internal/utils"
	"github.com/MKhiriev/go-configur/models"
)

// SignalR JSON hub protocol constants.
const (
	recordSeparator = 0x1e

	messageInvocation = 1
	messagePing       = 6
	messageClose      = 7

	// KeepAliveInterval is how often the client pings the hub.
	KeepAliveInterval = 15 * time.Second
	// serverTimeout closes a connection the hub has not written to for this long.
	serverTimeout = 30 * time.Second

	maxNegotiateRedirects = 100
)

var handshakeRequest = append([]byte(`{"protocol":"json","version":1}`), recordSeparator)

// Invocation is a hub method call addressed to the client.
type Invocation struct {
	Target    string
	Arguments []json.RawMessage
}

type hubMessage struct {
	Type      int               `json:"type"`
	Target    string            `json:"target,omitempty"`
	Arguments []json.RawMessage `json:"arguments,omitempty"`
	Error     string            `json:"error,omitempty"`
}

type negotiateResponse struct {
	ConnectionID     string `json:"connectionId"`
	ConnectionToken  string `json:"connectionToken"`
	NegotiateVersion int    `json:"negotiateVersion"`
	URL              string `json:"url"`
	AccessToken      string `json:"accessToken"`
	Error            string `json:"error"`
}

type hubConnector struct {
	client  *utils.HTTPClient
	dialer  *websocket.Dialer
	logger  *logger.Logger
	timeout time.Duration
}

// NewHubConnector returns the SignalR [HubConnector]. timeout bounds the
// negotiate call and the websocket handshake.
func NewHubConnector(timeout time.Duration, log *logger.Logger) HubConnector {
	if timeout <= 0 {
		timeout = utils.DefaultRequestTimeout
	}

	return &hubConnector{
		client: utils.NewHTTPClient(timeout),
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: timeout,
		},
		logger:  log,
		timeout: timeout,
	}
}

// Connect implements [HubConnector]: negotiate (following redirects), dial
// the websocket endpoint, and exchange the JSON protocol handshake.
func (h *hubConnector) Connect(ctx context.Context, channel models.PushChannel) (HubStream, error) {
	if channel.IsZero() {
		return nil, errors.New("hub: empty push channel")
	}

	endpoint, token := channel.URL, channel.AccessToken
	var nr negotiateResponse
	for i := 0; ; i++ {
		if i == maxNegotiateRedirects {
			return nil, errors.New("hub: too many negotiate redirects")
		}

		var err error
		nr, err = h.negotiate(ctx, endpoint, token)
		if err != nil {
			return nil, err
		}
		if nr.URL == "" {
			break
		}
		endpoint = nr.URL
		if nr.AccessToken != "" {
			token = nr.AccessToken
		}
	}

	wsURL, err := websocketURL(endpoint, nr, token)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set(utils.RequestIDHeader, utils.NewRequestID())
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := h.dialer.DialContext(ctx, wsURL, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("hub: dial: %w", err)
	}

	pending, err := handshake(conn, h.timeout)
	if err != nil {
		conn.Close()
		return nil, err
	}

	h.logger.Debug().
		Str("func", "hubConnector.Connect").
		Str("hub", endpoint).
		Msg("hub connection established")

	return &hubStream{conn: conn, pending: pending, logger: h.logger}, nil
}

func (h *hubConnector) negotiate(ctx context.Context, endpoint, token string) (negotiateResponse, error) {
	negotiateURL, err := httpURL(endpoint)
	if err != nil {
		return negotiateResponse{}, err
	}
	negotiateURL.Path = strings.TrimRight(negotiateURL.Path, "/") + "/negotiate"
	q := negotiateURL.Query()
	q.Set("negotiateVersion", "1")
	negotiateURL.RawQuery = q.Encode()

	req := h.client.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}

	resp, err := req.Post(negotiateURL.String())
	if err != nil {
		return negotiateResponse{}, fmt.Errorf("hub: negotiate: %w", err)
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return negotiateResponse{}, fmt.Errorf("hub: negotiate: http %d: %s", resp.StatusCode(), truncate(resp.Body(), 256))
	}

	var nr negotiateResponse
	if err := json.Unmarshal(resp.Body(), &nr); err != nil {
		return negotiateResponse{}, fmt.Errorf("hub: decode negotiate response: %w", err)
	}
	if nr.Error != "" {
		return negotiateResponse{}, fmt.Errorf("hub: negotiate: %s", nr.Error)
	}

	return nr, nil
}

// handshake exchanges the protocol handshake. The hub may batch further
// records into the same frame as its reply; those are returned unparsed.
func handshake(conn *websocket.Conn, timeout time.Duration) ([]byte, error) {
	_ = conn.SetWriteDeadline(time.Now().Add(timeout))
	if err := conn.WriteMessage(websocket.TextMessage, handshakeRequest); err != nil {
		return nil, fmt.Errorf("hub: send handshake: %w", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("hub: read handshake: %w", err)
	}

	record, rest, _ := bytes.Cut(data, []byte{recordSeparator})
	var reply struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(record, &reply); err != nil {
		return nil, fmt.Errorf("hub: decode handshake: %w", err)
	}
	if reply.Error != "" {
		return nil, fmt.Errorf("hub: handshake rejected: %s", reply.Error)
	}

	_ = conn.SetReadDeadline(time.Time{})
	_ = conn.SetWriteDeadline(time.Time{})

	if len(bytes.TrimSpace(rest)) == 0 {
		return nil, nil
	}
	return rest, nil
}

type hubStream struct {
	conn    *websocket.Conn
	// records that arrived in the handshake frame
	pending []byte
	logger  *logger.Logger

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// Listen implements [HubStream].
func (s *hubStream) Listen(ctx context.Context, onInvocation func(Invocation)) error {
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.keepAlive(ctx)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	// unblock ReadMessage when the caller cancels
	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()

	if pending := s.pending; pending != nil {
		s.pending = nil
		if err := s.dispatch(pending, onInvocation); err != nil {
			return err
		}
	}

	for {
		_ = s.conn.SetReadDeadline(time.Now().Add(serverTimeout))
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("hub: read: %w", err)
		}

		if err := s.dispatch(data, onInvocation); err != nil {
			return err
		}
	}
}

// dispatch handles every record of one frame. It returns an error only when
// the hub closed the connection.
func (s *hubStream) dispatch(data []byte, onInvocation func(Invocation)) error {
	for _, record := range bytes.Split(data, []byte{recordSeparator}) {
		if len(bytes.TrimSpace(record)) == 0 {
			continue
		}

		var msg hubMessage
		if err := json.Unmarshal(record, &msg); err != nil {
			s.logger.Warn().Err(err).Str("func", "hubStream.dispatch").Msg("skipping malformed hub message")
			continue
		}

		switch msg.Type {
		case messageInvocation:
			onInvocation(Invocation{Target: msg.Target, Arguments: msg.Arguments})
		case messagePing:
		case messageClose:
			if msg.Error != "" {
				return fmt.Errorf("%w: %s", ErrHubClosed, msg.Error)
			}
			return ErrHubClosed
		}
	}
	return nil
}

func (s *hubStream) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(KeepAliveInterval)
	defer ticker.Stop()

	ping := append([]byte(`{"type":6}`), recordSeparator)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.write(ping); err != nil {
				s.logger.Debug().Err(err).Str("func", "hubStream.keepAlive").Msg("hub ping failed")
				return
			}
		}
	}
}

func (s *hubStream) write(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(serverTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Close implements [HubStream].
func (s *hubStream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.writeMu.Lock()
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		s.writeMu.Unlock()
		err = s.conn.Close()
	})
	return err
}

// httpURL maps a hub URL onto the scheme used for negotiate.
func httpURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("hub: invalid url: %w", err)
	}

	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	case "http", "https":
	default:
		return nil, fmt.Errorf("hub: unsupported url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("hub: url has no host")
	}

	return u, nil
}

// websocketURL builds the connect URL: ws(s) scheme, the negotiated
// connection id, and the access token as a query parameter.
func websocketURL(endpoint string, nr negotiateResponse, token string) (string, error) {
	u, err := httpURL(endpoint)
	if err != nil {
		return "", err
	}

	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}

	id := nr.ConnectionToken
	if nr.NegotiateVersion == 0 || id == "" {
		id = nr.ConnectionID
	}

	q := u.Query()
	if id != "" {
		q.Set("id", id)
	}
	if token != "" {
		q.Set("access_token", token)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

package adapter

import (
	"errors"
	"fmt"
)

// ErrAuth matches every [AuthError] with errors.Is.
var ErrAuth = errors.New("credential exchange failed")

// AuthError is returned when no credential could be obtained from the
// identity authority: transport failure, non-2xx status, or a response
// without an access token.
type AuthError struct {
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("auth: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("auth: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func (e *AuthError) Is(target error) bool {
	return target == ErrAuth
}

// FetchKind classifies a [FetchError].
type FetchKind string

const (
	FetchKindNetwork FetchKind = "network"
	FetchKindHTTP    FetchKind = "http"
	FetchKindDecode  FetchKind = "decode"
)

// FetchError is returned by [BundleFetcher.Fetch]. Body holds the raw
// response, if one arrived. Match a kind with errors.Is against
// ErrFetchNetwork, ErrFetchHTTP or ErrFetchDecode.
type FetchError struct {
	Kind       FetchKind
	StatusCode int
	Body       []byte
	Err        error
}

var (
	ErrFetchNetwork = &FetchError{Kind: FetchKindNetwork}
	ErrFetchHTTP    = &FetchError{Kind: FetchKindHTTP}
	ErrFetchDecode  = &FetchError{Kind: FetchKindDecode}
)

func (e *FetchError) Error() string {
	switch {
	case e.Kind == FetchKindHTTP:
		return fmt.Sprintf("fetch: http %d: %s", e.StatusCode, truncate(e.Body, 256))
	case e.Err != nil:
		return fmt.Sprintf("fetch: %s: %v", e.Kind, e.Err)
	default:
		return "fetch: " + string(e.Kind)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	return ok && t.Kind == e.Kind
}

// ErrHubClosed is returned by [HubStream.Listen] when the hub sends a close
// message.
var ErrHubClosed = errors.New("hub closed the connection")

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

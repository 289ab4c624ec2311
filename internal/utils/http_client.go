package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultRequestTimeout bounds every outbound call so a hung remote service
// cannot stall the refresh timer.
const DefaultRequestTimeout = 5 * time.Second

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient(5 * time.Second)
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient with the given request timeout
// (DefaultRequestTimeout when timeout is not positive).
//
// Each request gets a fresh X-Request-ID header unless the caller already set
// one. Each call returns an independent client with its own connection pool.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	client := resty.New().
		SetTimeout(timeout).
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			if r.Header.Get(RequestIDHeader) == "" {
				r.SetHeader(RequestIDHeader, NewRequestID())
			}
			return nil
		})

	return &HTTPClient{Client: client}
}

package utils

import "github.com/google/uuid"

// RequestIDHeader carries a per-request correlation id on outbound calls.
const RequestIDHeader = "X-Request-ID"

// NewRequestID returns a time-ordered UUIDv7, falling back to a random v4.
func NewRequestID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

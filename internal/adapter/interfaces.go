// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the outbound transports of the configuration client:
// the token exchange with the identity authority, the bundle fetch from the
// settings API, and the SignalR hub connection that delivers invalidations.
//
// Transport failures are reported as typed errors ([AuthError], [FetchError])
// so the service layer can classify them with [errors.Is] without knowing
// anything about HTTP.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-configur/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// CredentialExchanger obtains the credential attached to settings API calls.
type CredentialExchanger interface {
	// Obtain returns a usable credential. In development mode it returns the
	// X-ClientId sentinel without any network call; otherwise it performs a
	// client-credentials grant, reusing the previous token until shortly
	// before it expires. Failures are *AuthError; there is no internal retry.
	Obtain(ctx context.Context) (models.Credential, error)

	// Invalidate drops any cached token so the next Obtain asks the authority
	// again.
	Invalidate()
}

// BundleFetcher retrieves the encrypted bundle for the configured application.
type BundleFetcher interface {
	// Fetch returns the parsed bundle and the raw response body. Failures are
	// *AuthError or *FetchError.
	Fetch(ctx context.Context) (models.Bundle, []byte, error)
}

// HubConnector opens push connections.
type HubConnector interface {
	// Connect negotiates with the hub behind channel.URL and completes the
	// protocol handshake.
	Connect(ctx context.Context, channel models.PushChannel) (HubStream, error)
}

// HubStream is one established hub connection.
type HubStream interface {
	// Listen delivers invocations to onInvocation until ctx is done, the hub
	// closes the connection, or the connection fails. It always returns a
	// non-nil error.
	Listen(ctx context.Context, onInvocation func(Invocation)) error

	// Close tears the connection down. It is safe to call more than once.
	Close() error
}

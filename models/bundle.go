// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBundleIncomplete is returned by [ParseBundle] when the payload decodes
// as JSON but lacks the ciphertext or the wrapped private key.
var ErrBundleIncomplete = errors.New("bundle is missing ciphertext or private key")

// Bundle is the opaque projection served by the remote settings API and
// persisted verbatim by the local cache.
//
// Ciphertext and PrivateKeyCiphertext travel as standard base64 strings and
// are decoded by encoding/json into raw bytes. Only the decryptor looks inside
// them.
type Bundle struct {
	// Ciphertext is the settings payload sealed for the application's public key.
	Ciphertext []byte `json:"ciphertext"`

	// PrivateKeyCiphertext is the application's private key wrapped with the
	// unlock key derived from the local app password.
	PrivateKeyCiphertext []byte `json:"privateKeyCiphertext"`

	// ETag identifies the revision of the bundle on the server.
	ETag string `json:"eTag"`

	// PushChannel carries the push subscription endpoint next to the
	// ciphertext, not inside it.
	PushChannel PushChannel `json:"signalR"`
}

// PushChannel holds the connection info for the server-initiated
// invalidation channel.
type PushChannel struct {
	URL         string `json:"url"`
	AccessToken string `json:"accessToken"`
}

// IsZero reports whether no push endpoint was delivered.
func (p PushChannel) IsZero() bool {
	return p.URL == ""
}

// ParseBundle decodes raw bundle JSON. It is the single decoding path for both
// network responses and cached payloads, so a cached bundle is
// indistinguishable from a freshly fetched one.
//
// Field names are matched case-insensitively, which accepts both the
// camelCase and PascalCase spellings produced by the server.
func ParseBundle(raw []byte) (Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return Bundle{}, fmt.Errorf("decode bundle: %w", err)
	}

	if len(b.Ciphertext) == 0 || len(b.PrivateKeyCiphertext) == 0 {
		return Bundle{}, ErrBundleIncomplete
	}

	return b, nil
}

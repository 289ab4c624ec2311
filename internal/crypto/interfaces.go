// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto turns an encrypted settings bundle into plaintext settings.
//
// A bundle carries two blobs. The private key blob is an X25519 private key
// wrapped with AES-256-GCM under the unlock key SHA-256(appPassword):
//
//	privateKeyCiphertext = nonce(12) ‖ AES-GCM(unlockKey, privateKey)
//
// The ciphertext blob is a NaCl anonymous sealed box addressed to the public
// half of that key; it opens to a JSON array of {"key", "value"} objects.
//
// The sealing side lives in sealer.go so that development servers and tests
// can produce bundles the decryptor accepts.
package crypto

import (
	"github.com/MKhiriev/go-configur/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/decryptor_mock.go -package=mock

// Decryptor opens bundles. Implementations hold no state between calls and
// are safe for concurrent use.
type Decryptor interface {
	// Decrypt unwraps the bundle's private key with appPassword, opens the
	// ciphertext, and returns the settings together with the bundle's push
	// channel. Failures are reported as *[DecryptError].
	Decrypt(bundle models.Bundle, appPassword string) ([]models.Setting, models.PushChannel, error)
}

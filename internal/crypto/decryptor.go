// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"

	"github.com/MKhiriev/go-configur/models"
)

// KeySize is the length of the unlock key and of the X25519 private key.
const KeySize = 32

type decryptor struct{}

// NewDecryptor returns the bundle [Decryptor].
func NewDecryptor() Decryptor {
	return &decryptor{}
}

// Decrypt implements [Decryptor].
//
// The unlock key, the unwrapped private key, and the plaintext payload are
// wiped before Decrypt returns, whatever the outcome.
func (d *decryptor) Decrypt(bundle models.Bundle, appPassword string) ([]models.Setting, models.PushChannel, error) {
	if appPassword == "" {
		return nil, models.PushChannel{}, &DecryptError{Kind: KindBadPassword, Err: errors.New("empty app password")}
	}

	unlockKey := UnlockKey(appPassword)
	defer memguard.WipeBytes(unlockKey)

	privateKey, err := unwrapKey(bundle.PrivateKeyCiphertext, unlockKey)
	if err != nil {
		return nil, models.PushChannel{}, errUnwrapKey
	}
	defer memguard.WipeBytes(privateKey)

	var priv, pub [KeySize]byte
	copy(priv[:], privateKey)
	defer memguard.WipeBytes(priv[:])

	pubKey, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return nil, models.PushChannel{}, errUnwrapKey
	}
	copy(pub[:], pubKey)

	plaintext, ok := box.OpenAnonymous(nil, bundle.Ciphertext, &pub, &priv)
	if !ok {
		return nil, models.PushChannel{}, &DecryptError{Kind: KindBadCiphertext, Err: errors.New("sealed box authentication failed")}
	}
	defer memguard.WipeBytes(plaintext)

	var settings []models.Setting
	if err := json.Unmarshal(plaintext, &settings); err != nil {
		return nil, models.PushChannel{}, &DecryptError{Kind: KindBadCiphertext, Err: fmt.Errorf("unmarshal settings: %w", err)}
	}

	return settings, bundle.PushChannel, nil
}

// UnlockKey derives the 32-byte AES key that wraps the private key.
func UnlockKey(appPassword string) []byte {
	sum := sha256.Sum256([]byte(appPassword))
	return sum[:]
}

// unwrapKey opens blob = nonce ‖ ciphertext with AES-256-GCM and checks that
// the result is an X25519 private key.
func unwrapKey(blob, unlockKey []byte) ([]byte, error) {
	block, err := aes.NewCipher(unlockKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	key, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	if len(key) != KeySize {
		memguard.WipeBytes(key)
		return nil, fmt.Errorf("unexpected private key length %d", len(key))
	}

	return key, nil
}

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/nacl/box"

	"github.com/MKhiriev/go-configur/models"
)

// AppKey is the key pair an application is provisioned with. Only the public
// half and the wrapped private half are ever stored.
type AppKey struct {
	PublicKey            [KeySize]byte
	PrivateKeyCiphertext []byte
}

// GenerateAppKey creates a fresh X25519 key pair and wraps the private half
// under appPassword.
func GenerateAppKey(appPassword string) (AppKey, error) {
	if appPassword == "" {
		return AppKey{}, errors.New("app password must not be empty")
	}

	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return AppKey{}, fmt.Errorf("generate key pair: %w", err)
	}
	defer memguard.WipeBytes(priv[:])

	wrapped, err := WrapPrivateKey(priv[:], appPassword)
	if err != nil {
		return AppKey{}, err
	}

	return AppKey{PublicKey: *pub, PrivateKeyCiphertext: wrapped}, nil
}

// WrapPrivateKey encrypts privateKey with AES-256-GCM under
// UnlockKey(appPassword). A random 12-byte nonce is prepended to the result.
func WrapPrivateKey(privateKey []byte, appPassword string) ([]byte, error) {
	unlockKey := UnlockKey(appPassword)
	defer memguard.WipeBytes(unlockKey)

	block, err := aes.NewCipher(unlockKey)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, privateKey, nil), nil
}

// SealSettings marshals settings to JSON and seals them into an anonymous box
// for publicKey.
func SealSettings(settings []models.Setting, publicKey *[KeySize]byte) ([]byte, error) {
	if settings == nil {
		settings = []models.Setting{}
	}

	plaintext, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	defer memguard.WipeBytes(plaintext)

	sealed, err := box.SealAnonymous(nil, plaintext, publicKey, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("seal settings: %w", err)
	}

	return sealed, nil
}

// SealBundle builds a complete bundle for key. The push channel and ETag are
// left for the caller to fill.
func SealBundle(settings []models.Setting, key AppKey) (models.Bundle, error) {
	ciphertext, err := SealSettings(settings, &key.PublicKey)
	if err != nil {
		return models.Bundle{}, err
	}

	return models.Bundle{
		Ciphertext:           ciphertext,
		PrivateKeyCiphertext: key.PrivateKeyCiphertext,
	}, nil
}

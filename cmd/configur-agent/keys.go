package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-configur/internal/crypto"
	"github.com/MKhiriev/go-configur/models"
)

// passwordEnv is read when no --password flag is given.
const passwordEnv = "CONFIGUR_APP_PASSWORD"

// keyFile is the on-disk form of an application key pair.
type keyFile struct {
	PublicKey            string `json:"publicKey"`
	PrivateKeyCiphertext string `json:"privateKeyCiphertext"`
}

func (k keyFile) appKey() (crypto.AppKey, error) {
	pub, err := base64.StdEncoding.DecodeString(k.PublicKey)
	if err != nil {
		return crypto.AppKey{}, fmt.Errorf("decode public key: %w", err)
	}
	if len(pub) != crypto.KeySize {
		return crypto.AppKey{}, fmt.Errorf("public key must be %d bytes, got %d", crypto.KeySize, len(pub))
	}

	wrapped, err := base64.StdEncoding.DecodeString(k.PrivateKeyCiphertext)
	if err != nil {
		return crypto.AppKey{}, fmt.Errorf("decode private key ciphertext: %w", err)
	}

	key := crypto.AppKey{PrivateKeyCiphertext: wrapped}
	copy(key.PublicKey[:], pub)
	return key, nil
}

func newKeygenCmd() *cobra.Command {
	var password, out string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create an application key pair",
		Long: `Keygen creates an X25519 key pair and wraps the private key with the app
password. The output holds the public key and the wrapped private key; the
password itself is not stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if password == "" {
				return errors.New("an app password is required (--password or " + passwordEnv + ")")
			}

			key, err := crypto.GenerateAppKey(password)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), out, keyFile{
				PublicKey:            base64.StdEncoding.EncodeToString(key.PublicKey[:]),
				PrivateKeyCiphertext: base64.StdEncoding.EncodeToString(key.PrivateKeyCiphertext),
			})
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "app password that unlocks the private key")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")

	return cmd
}

func newSealCmd() *cobra.Command {
	var (
		keyPath, out string
		etag         string
		channel      models.PushChannel
	)

	cmd := &cobra.Command{
		Use:   "seal <settings.json>",
		Short: "Seal a settings file into a bundle",
		Long: `Seal encrypts a settings file for the public key in --key and prints the
bundle JSON a settings API would serve. The settings file is either an array
of {"key": ..., "value": ...} objects or a flat JSON object of strings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawKey, err := os.ReadFile(keyPath)
			if err != nil {
				return fmt.Errorf("read key file: %w", err)
			}
			var kf keyFile
			if err := json.Unmarshal(rawKey, &kf); err != nil {
				return fmt.Errorf("decode key file: %w", err)
			}
			key, err := kf.appKey()
			if err != nil {
				return err
			}

			rawSettings, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read settings: %w", err)
			}
			settings, err := parseSettings(rawSettings)
			if err != nil {
				return err
			}

			bundle, err := crypto.SealBundle(settings, key)
			if err != nil {
				return err
			}
			bundle.ETag = etag
			bundle.PushChannel = channel

			return writeJSON(cmd.OutOrStdout(), out, bundle)
		},
	}

	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "key file written by keygen")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&etag, "etag", "", "bundle revision")
	cmd.Flags().StringVar(&channel.URL, "push-url", "", "push hub URL delivered with the bundle")
	cmd.Flags().StringVar(&channel.AccessToken, "push-token", "", "push hub access token")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

// parseSettings accepts a settings array or a flat object. Object keys are
// sorted so the sealed payload does not depend on map order.
func parseSettings(raw []byte) ([]models.Setting, error) {
	var list []models.Setting
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var flat map[string]string
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("settings must be an array of key/value objects or an object of strings: %w", err)
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list = make([]models.Setting, 0, len(keys))
	for _, k := range keys {
		list = append(list, models.Setting{Key: k, Value: flat[k]})
	}
	return list, nil
}

func writeJSON(stdout io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-configur/internal/crypto"
	"github.com/MKhiriev/go-configur/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(models.NewAppBuildInfo("1.0.0", "2026-10-19", "abc123"))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// ── version ───────────────────────────────────────────────────────────────────

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "Build version: 1.0.0")
	assert.Contains(t, out, "Build commit: abc123")
}

// ── keygen / seal ─────────────────────────────────────────────────────────────

func TestKeygenThenSeal_BundleOpensWithPassword(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "key.json")
	settingsPath := filepath.Join(dir, "settings.json")
	bundlePath := filepath.Join(dir, "bundle.json")

	_, err := execute(t, "keygen", "--password", "pw", "--out", keyPath)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(settingsPath, []byte(`{"B":"2","A":"1"}`), 0o600))

	_, err = execute(t, "seal", settingsPath,
		"--key", keyPath,
		"--etag", "v3",
		"--push-url", "wss://hub",
		"--push-token", "t",
		"--out", bundlePath,
	)
	require.NoError(t, err)

	raw, err := os.ReadFile(bundlePath)
	require.NoError(t, err)
	bundle, err := models.ParseBundle(raw)
	require.NoError(t, err)
	assert.Equal(t, "v3", bundle.ETag)

	settings, channel, err := crypto.NewDecryptor().Decrypt(bundle, "pw")
	require.NoError(t, err)
	assert.Equal(t, []models.Setting{{Key: "A", Value: "1"}, {Key: "B", Value: "2"}}, settings)
	assert.Equal(t, models.PushChannel{URL: "wss://hub", AccessToken: "t"}, channel)
}

func TestKeygen_WritesBase64KeysToStdout(t *testing.T) {
	out, err := execute(t, "keygen", "-p", "pw")
	require.NoError(t, err)

	var kf keyFile
	require.NoError(t, json.Unmarshal([]byte(out), &kf))
	_, err = kf.appKey()
	assert.NoError(t, err)
}

func TestKeygen_PasswordFromEnv(t *testing.T) {
	t.Setenv(passwordEnv, "from-env")

	_, err := execute(t, "keygen")
	assert.NoError(t, err)
}

func TestKeygen_NoPassword(t *testing.T) {
	t.Setenv(passwordEnv, "")

	_, err := execute(t, "keygen")
	assert.Error(t, err)
}

func TestSeal_RequiresKey(t *testing.T) {
	_, err := execute(t, "seal", "settings.json")
	assert.Error(t, err)
}

func TestKeyFile_ShortPublicKey(t *testing.T) {
	_, err := keyFile{PublicKey: "AAEC", PrivateKeyCiphertext: ""}.appKey()
	assert.Error(t, err)
}

// ── parseSettings ─────────────────────────────────────────────────────────────

func TestParseSettings(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []models.Setting
		wantErr bool
	}{
		{
			name: "array keeps order",
			raw:  `[{"key":"Z","value":"1"},{"key":"A","value":"2"}]`,
			want: []models.Setting{{Key: "Z", Value: "1"}, {Key: "A", Value: "2"}},
		},
		{
			name: "object is sorted by key",
			raw:  `{"b":"2","a":"1"}`,
			want: []models.Setting{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}},
		},
		{name: "number values are rejected", raw: `{"a":1}`, wantErr: true},
		{name: "not json", raw: `nope`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSettings([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

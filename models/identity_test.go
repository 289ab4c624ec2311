package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Identity
		wantErr bool
	}{
		{
			name:  "canonical",
			input: "AppId=demo;AppSecret=s3cr3t;AppPassword=pw",
			want:  Identity{AppID: "demo", AppSecret: "s3cr3t", AppPassword: "pw"},
		},
		{
			name:  "keys are case-insensitive and trimmed",
			input: " appid = demo ; APPSECRET=s3cr3t;apppassword=pw ;",
			want:  Identity{AppID: "demo", AppSecret: "s3cr3t", AppPassword: "pw"},
		},
		{
			name:  "malformed chunks are skipped",
			input: "AppId=demo;junk;A=B=C;AppSecret=s;AppPassword=p",
			want:  Identity{AppID: "demo", AppSecret: "s", AppPassword: "p"},
		},
		{
			name:  "unknown keys are ignored",
			input: "AppId=demo;Region=eu;AppSecret=s;AppPassword=p",
			want:  Identity{AppID: "demo", AppSecret: "s", AppPassword: "p"},
		},
		{name: "missing password", input: "AppId=demo;AppSecret=s", wantErr: true},
		{name: "empty value", input: "AppId=;AppSecret=s;AppPassword=p", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConnectionString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIncompleteIdentity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentity_StringRedactsSecrets(t *testing.T) {
	id := Identity{AppID: "demo", AppSecret: "s3cr3t", AppPassword: "pw"}

	s := id.String()

	assert.Contains(t, s, "demo")
	assert.NotContains(t, s, "s3cr3t")
	assert.NotContains(t, s, "pw")
}

func TestIdentity_Validate_BlankID(t *testing.T) {
	err := Identity{AppID: "  ", AppSecret: "s", AppPassword: "p"}.Validate()
	assert.ErrorIs(t, err, ErrIncompleteIdentity)
}

package models

import "time"

// TokenResponse is the body returned by the identity authority for a
// client-credentials grant.
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int64  `json:"expires_in"`
	Scope            string `json:"scope"`
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// Credential is what the fetcher attaches to outbound requests.
//
// In development mode Bearer is empty and ClientID is sent as a plain
// X-ClientId header instead of an Authorization header.
type Credential struct {
	Bearer    string
	ClientID  string
	ExpiresAt time.Time
}

// IsDevelopment reports whether the credential is the development sentinel.
func (c Credential) IsDevelopment() bool {
	return c.Bearer == "" && c.ClientID != ""
}

// Valid reports whether a bearer credential is still usable at now, leaving
// skew for the request to reach the server.
func (c Credential) Valid(now time.Time, skew time.Duration) bool {
	if c.Bearer == "" {
		return false
	}
	if c.ExpiresAt.IsZero() {
		return false
	}
	return now.Add(skew).Before(c.ExpiresAt)
}

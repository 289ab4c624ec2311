package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-configur/internal/config"
	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/internal/utils"
	"github.com/MKhiriev/go-configur/models"
)

const (
	tokenPath  = "/connect/token"
	tokenScope = "configur_api"

	// tokenSkew is how long before expiry a cached token is refreshed.
	tokenSkew = 30 * time.Second
)

type credentialExchanger struct {
	client    *utils.HTTPClient
	authority string
	identity  models.Identity
	dev       bool

	mu     sync.Mutex
	cached models.Credential
	now    func() time.Time

	logger *logger.Logger
}

// NewCredentialExchanger builds the [CredentialExchanger] for identity
// against the authority configured in cfg.
func NewCredentialExchanger(cfg config.Remote, identity models.Identity, log *logger.Logger) (CredentialExchanger, error) {
	c := &credentialExchanger{
		client:   utils.NewHTTPClient(cfg.RequestTimeout),
		identity: identity,
		dev:      cfg.IsDevelopment,
		now:      time.Now,
		logger:   log,
	}

	if c.dev {
		return c, nil
	}

	authority, err := normalizeBaseURL(cfg.IdentityAuthority)
	if err != nil {
		return nil, fmt.Errorf("invalid identity authority: %w", err)
	}
	c.authority = authority

	return c, nil
}

// Obtain implements [CredentialExchanger].
func (c *credentialExchanger) Obtain(ctx context.Context) (models.Credential, error) {
	if c.dev {
		return models.Credential{ClientID: c.identity.AppID}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached.Valid(c.now(), tokenSkew) {
		return c.cached, nil
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     c.identity.AppID,
			"client_secret": c.identity.AppSecret,
			"scope":         tokenScope,
		}).
		Post(c.authority + tokenPath)
	if err != nil {
		return models.Credential{}, &AuthError{Err: fmt.Errorf("token request: %w", err)}
	}

	var tr models.TokenResponse
	_ = json.Unmarshal(resp.Body(), &tr)

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		reason := tr.Error
		if reason == "" {
			reason = strings.TrimSpace(string(resp.Body()))
		}
		if reason == "" {
			reason = http.StatusText(resp.StatusCode())
		}
		return models.Credential{}, &AuthError{StatusCode: resp.StatusCode(), Err: errors.New(reason)}
	}

	if tr.AccessToken == "" {
		return models.Credential{}, &AuthError{StatusCode: resp.StatusCode(), Err: errors.New("response has no access_token")}
	}

	cred := models.Credential{
		Bearer:    tr.AccessToken,
		ExpiresAt: c.expiry(tr),
	}
	c.cached = cred

	c.logger.Debug().
		Str("func", "credentialExchanger.Obtain").
		Str(logger.AppIDField, c.identity.AppID).
		Time("expires_at", cred.ExpiresAt).
		Msg("access token obtained")

	return cred, nil
}

// Invalidate implements [CredentialExchanger].
func (c *credentialExchanger) Invalidate() {
	c.mu.Lock()
	c.cached = models.Credential{}
	c.mu.Unlock()
}

// expiry prefers the JWT exp claim and falls back to expires_in. A zero time
// means the token is used for one request only.
func (c *credentialExchanger) expiry(tr models.TokenResponse) time.Time {
	if exp, err := utils.TokenExpiry(tr.AccessToken); err == nil {
		return exp
	}
	if tr.ExpiresIn > 0 {
		return c.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return time.Time{}
}

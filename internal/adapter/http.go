package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-configur/internal/config"
	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/internal/utils"
	"github.com/MKhiriev/go-configur/models"
)

const (
	findPathV1 = "/app-settings/find"
	findPathV2 = "/valuables/find"

	// ClientIDHeader carries the application id in development mode.
	ClientIDHeader = "X-ClientId"
)

type httpBundleFetcher struct {
	client      *utils.HTTPClient
	credentials CredentialExchanger
	findPath    string

	logger *logger.Logger
}

// NewHTTPBundleFetcher constructs the HTTP [BundleFetcher]. The API host may
// carry a scheme for local servers; https is assumed otherwise. The API
// version selects the find endpoint.
//
// Returns an error if the host cannot be parsed.
func NewHTTPBundleFetcher(cfg config.Remote, credentials CredentialExchanger, log *logger.Logger) (BundleFetcher, error) {
	baseURL, err := normalizeBaseURL(cfg.APIHost)
	if err != nil {
		return nil, fmt.Errorf("invalid api host: %w", err)
	}

	client := utils.NewHTTPClient(cfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	findPath := findPathV1
	if cfg.APIVersion == config.APIVersionV2 {
		findPath = findPathV2
	}

	return &httpBundleFetcher{
		client:      client,
		credentials: credentials,
		findPath:    findPath,
		logger:      log,
	}, nil
}

// Fetch implements [BundleFetcher]. It GETs the find endpoint with the
// credential from the exchanger and parses the body with
// [models.ParseBundle]. A 401 drops the cached token so the next cycle asks
// for a new one.
func (h *httpBundleFetcher) Fetch(ctx context.Context) (models.Bundle, []byte, error) {
	cred, err := h.credentials.Obtain(ctx)
	if err != nil {
		return models.Bundle{}, nil, err
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if cred.IsDevelopment() {
		req.SetHeader(ClientIDHeader, cred.ClientID)
	} else {
		req.SetAuthToken(cred.Bearer)
	}

	resp, err := req.Get(h.findPath)
	if err != nil {
		return models.Bundle{}, nil, &FetchError{Kind: FetchKindNetwork, Err: err}
	}

	raw := resp.Body()
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		if resp.StatusCode() == http.StatusUnauthorized {
			h.credentials.Invalidate()
		}
		return models.Bundle{}, nil, &FetchError{Kind: FetchKindHTTP, StatusCode: resp.StatusCode(), Body: raw}
	}

	bundle, err := models.ParseBundle(raw)
	if err != nil {
		return models.Bundle{}, nil, &FetchError{Kind: FetchKindDecode, StatusCode: resp.StatusCode(), Body: raw, Err: err}
	}

	h.logger.Debug().
		Str("func", "httpBundleFetcher.Fetch").
		Str("etag", bundle.ETag).
		Str(utils.RequestIDHeader, resp.Request.Header.Get(utils.RequestIDHeader)).
		Int("bytes", len(raw)).
		Msg("bundle fetched")

	return bundle, raw, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

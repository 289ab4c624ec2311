package configur

import (
	"time"

	"dario.cat/mergo"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-configur/internal/config"
)

// Options configure a [Provider]. Zero fields take the defaults of the
// hosted service: api.configur.it, https://id.configur.it, a five second
// request timeout and a five minute refresh.
type Options struct {
	// ConnectionString has the form AppId=..;AppSecret=..;AppPassword=..
	ConnectionString string

	// AppID, AppSecret and AppPassword override the matching parts of
	// ConnectionString.
	AppID       string
	AppSecret   string
	AppPassword string

	APIHost           string
	IdentityAuthority string

	// Development authenticates with the application id alone.
	Development bool

	RequestTimeout time.Duration

	// APIVersion is "v1" (default) or "v2".
	APIVersion string

	// CacheEnabled keeps the last fetched bundle on disk as a fallback.
	CacheEnabled bool
	// CacheDriver is "file" (default) or "sqlite".
	CacheDriver string
	CacheDir    string
	CacheDSN    string

	RefreshInterval time.Duration

	// DisablePush turns off the server push; only the timer refreshes.
	DisablePush bool

	// Logger receives the provider's logs. Nil discards them.
	Logger *zerolog.Logger
}

// structuredConfig lays the options over the built-in defaults.
func (o Options) structuredConfig() (*config.StructuredConfig, error) {
	cfg := config.Defaults()

	fromOptions := config.StructuredConfig{
		App: config.App{
			ID:               o.AppID,
			Secret:           o.AppSecret,
			Password:         o.AppPassword,
			ConnectionString: o.ConnectionString,
		},
		Remote: config.Remote{
			APIHost:           o.APIHost,
			IdentityAuthority: o.IdentityAuthority,
			IsDevelopment:     o.Development,
			RequestTimeout:    o.RequestTimeout,
			APIVersion:        o.APIVersion,
		},
		Cache: config.Cache{
			Enabled: o.CacheEnabled,
			Driver:  o.CacheDriver,
			Dir:     o.CacheDir,
			DSN:     o.CacheDSN,
		},
		Sync: config.Sync{
			RefreshInterval: o.RefreshInterval,
			DisablePush:     o.DisablePush,
		},
	}

	if err := mergo.Merge(cfg, fromOptions, mergo.WithOverride); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		ID               string `json:"id"`
		Secret           string `json:"secret"`
		Password         string `json:"password"`
		ConnectionString string `json:"connection_string"`
		Version          string `json:"version"`
	} `json:"app,omitempty"`

	Remote struct {
		APIHost           string   `json:"api_host"`
		IdentityAuthority string   `json:"identity_authority"`
		IsDevelopment     bool     `json:"development"`
		RequestTimeout    Duration `json:"request_timeout"`
		APIVersion        string   `json:"api_version"`
	} `json:"remote,omitempty"`

	Cache struct {
		Enabled bool   `json:"enabled"`
		Driver  string `json:"driver"`
		Dir     string `json:"dir"`
		DSN     string `json:"dsn"`
	} `json:"cache,omitempty"`

	Sync struct {
		RefreshInterval Duration `json:"refresh_interval"`
		DisablePush     bool     `json:"disable_push"`
	} `json:"sync,omitempty"`

	Admin struct {
		HTTPAddress string `json:"http_address"`
	} `json:"admin,omitempty"`

	Log struct {
		Level string `json:"level"`
		File  string `json:"file"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			ID:               jsonCfg.App.ID,
			Secret:           jsonCfg.App.Secret,
			Password:         jsonCfg.App.Password,
			ConnectionString: jsonCfg.App.ConnectionString,
			Version:          jsonCfg.App.Version,
		},
		Remote: Remote{
			APIHost:           jsonCfg.Remote.APIHost,
			IdentityAuthority: jsonCfg.Remote.IdentityAuthority,
			IsDevelopment:     jsonCfg.Remote.IsDevelopment,
			RequestTimeout:    time.Duration(jsonCfg.Remote.RequestTimeout),
			APIVersion:        jsonCfg.Remote.APIVersion,
		},
		Cache: Cache{
			Enabled: jsonCfg.Cache.Enabled,
			Driver:  jsonCfg.Cache.Driver,
			Dir:     jsonCfg.Cache.Dir,
			DSN:     jsonCfg.Cache.DSN,
		},
		Sync: Sync{
			RefreshInterval: time.Duration(jsonCfg.Sync.RefreshInterval),
			DisablePush:     jsonCfg.Sync.DisablePush,
		},
		Admin: Admin{
			HTTPAddress: jsonCfg.Admin.HTTPAddress,
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
			File:  jsonCfg.Log.File,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s", and from raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

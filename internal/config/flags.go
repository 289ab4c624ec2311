package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args (without the program name).
// Unset flags leave their fields zero so they do not override other sources.
//
// Flags:
//
//	-app-id               application id
//	-app-secret           application secret
//	-app-password         local passphrase unlocking the private key
//	-connection-string    AppId=..;AppSecret=..;AppPassword=..
//	-api-host             settings API host
//	-authority            identity authority base URL
//	-dev                  development mode (X-ClientId authentication)
//	-api-version          settings API version (v1, v2)
//	-request-timeout      outbound request timeout (e.g. "5s")
//	-cache                enable the local fallback cache
//	-cache-driver         cache driver (file, sqlite)
//	-cache-dir            cache directory for the file driver
//	-cache-dsn            database path for the sqlite driver
//	-refresh-interval     scheduled refresh period (e.g. "5m")
//	-no-push              disable the push subscription
//	-a                    admin API address in format [host]:[port]
//	-log-level            log level
//	-log-file             log file path
//	-c/-config            json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	var cfg StructuredConfig
	var adminAddress NetAddress

	fs := flag.NewFlagSet("configur-agent", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.App.ID, "app-id", "", "Application id")
	fs.StringVar(&cfg.App.Secret, "app-secret", "", "Application secret")
	fs.StringVar(&cfg.App.Password, "app-password", "", "Application password")
	fs.StringVar(&cfg.App.ConnectionString, "connection-string", "", "Connection string AppId=..;AppSecret=..;AppPassword=..")
	fs.StringVar(&cfg.Remote.APIHost, "api-host", "", "Settings API host")
	fs.StringVar(&cfg.Remote.IdentityAuthority, "authority", "", "Identity authority base URL")
	fs.BoolVar(&cfg.Remote.IsDevelopment, "dev", false, "Development mode")
	fs.StringVar(&cfg.Remote.APIVersion, "api-version", "", "Settings API version (v1, v2)")
	fs.DurationVar(&cfg.Remote.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 5s)")
	fs.BoolVar(&cfg.Cache.Enabled, "cache", false, "Enable local fallback cache")
	fs.StringVar(&cfg.Cache.Driver, "cache-driver", "", "Cache driver (file, sqlite)")
	fs.StringVar(&cfg.Cache.Dir, "cache-dir", "", "Cache directory")
	fs.StringVar(&cfg.Cache.DSN, "cache-dsn", "", "SQLite cache path")
	fs.DurationVar(&cfg.Sync.RefreshInterval, "refresh-interval", 0, "Refresh interval (e.g., 5m)")
	fs.BoolVar(&cfg.Sync.DisablePush, "no-push", false, "Disable push subscription")
	fs.Var(&adminAddress, "a", "Admin API address host:port")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")
	fs.StringVar(&cfg.Log.File, "log-file", "", "Log file path")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Join(ErrInvalidFlags, err)
	}

	cfg.Admin.HTTPAddress = adminAddress.String()

	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

var _ flag.Value = (*NetAddress)(nil)

package tls

import (
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"strconv"

	"giftlist-api/internal/logging"
)

// Config holds the HTTPS listener settings.
type Config struct {
	Enabled      bool
	CertFile     string
	KeyFile      string
	Port         string
	HTTPPort     string // plain listener for the redirect server
	RedirectHTTP bool
	MinVersion   uint16
}

// NewConfigFromEnv reads TLS_* environment variables. TLS is off by default;
// the usual deployment terminates it at a proxy in front of the API.
func NewConfigFromEnv() *Config {
	return &Config{
		Enabled:      getEnvBool("TLS_ENABLED", false),
		CertFile:     getEnv("TLS_CERT_FILE", "./certs/server.crt"),
		KeyFile:      getEnv("TLS_KEY_FILE", "./certs/server.key"),
		Port:         getEnv("TLS_PORT", "8443"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		RedirectHTTP: getEnvBool("TLS_REDIRECT_HTTP", true),
		MinVersion:   parseVersion(getEnv("TLS_MIN_VERSION", "1.2")),
	}
}

// Build validates the key pair and returns the listener config. Cipher suites
// for TLS 1.3 are fixed by the runtime; for 1.2 the defaults are kept.
func (c *Config) Build() (*tls.Config, error) {
	if !c.Enabled {
		return nil, fmt.Errorf("TLS is not enabled")
	}

	for _, f := range []string{c.CertFile, c.KeyFile} {
		if _, err := os.Stat(f); err != nil {
			return nil, fmt.Errorf("TLS file %s: %w", f, err)
		}
	}

	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load key pair: %w", err)
	}

	logging.Logger.Infof("TLS configured: cert=%s, minVersion=%s", c.CertFile, versionName(c.MinVersion))

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   c.MinVersion,
	}, nil
}

// Addr is the HTTPS listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort("", c.Port)
}

func parseVersion(v string) uint16 {
	switch v {
	case "1.2":
		return tls.VersionTLS12
	case "1.3":
		return tls.VersionTLS13
	default:
		logging.Logger.Warnf("Unknown TLS version %q, using 1.2", v)
		return tls.VersionTLS12
	}
}

func versionName(v uint16) string {
	if v == tls.VersionTLS13 {
		return "TLS 1.3"
	}
	return "TLS 1.2"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// Package config loads the environment-variable configuration shared by
// every SAKU service binary, following the naming convention from the
// original platform: <SERVICE>_DATABASE_URL, <SERVICE>_SERVICE_BIND,
// <SERVICE>_SERVICE_URL, plus the common JWT_SECRET / DB pool / timeout
// settings.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServiceConfig is the configuration every SAKU binary loads at boot.
type ServiceConfig struct {
	ServiceName string
	BindAddr    string
	DatabaseURL string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	DBMaxOpenConns int
	DBMaxIdleConns int
	RequestTimeout time.Duration

	TrustGatewayHeaders bool

	// PeerURLs maps a downstream service name (as used by the gateway and
	// the reporting composer) to its base URL.
	PeerURLs map[string]string
}

// defaultPeerPorts mirrors the nine downstream services the gateway and the
// reporting composer fan out to.
var defaultPeerPorts = map[string]string{
	"auth":        "3001",
	"company":     "3002",
	"accounts":    "3003",
	"ledger":      "3004",
	"tax":         "3005",
	"payables":    "3006",
	"receivables": "3007",
	"inventory":   "3008",
	"reporting":   "3009",
}

// Load reads configuration for a service named serviceEnvPrefix, e.g.
// "GENERAL_LEDGER" reads GENERAL_LEDGER_SERVICE_BIND /
// GENERAL_LEDGER_DATABASE_URL.
func Load(serviceName, serviceEnvPrefix, defaultBind string) ServiceConfig {
	_ = godotenv.Load()

	peers := map[string]string{}
	for name, port := range defaultPeerPorts {
		envKey := strings.ToUpper(name) + "_SERVICE_URL"
		peers[name] = getenv(envKey, "http://localhost:"+port)
	}

	return ServiceConfig{
		ServiceName:         serviceName,
		BindAddr:            getenv(serviceEnvPrefix+"_SERVICE_BIND", defaultBind),
		DatabaseURL:         getenv(serviceEnvPrefix+"_DATABASE_URL", ""),
		JWTSecret:           strings.TrimSpace(getenv("JWT_SECRET", "")),
		AccessTokenTTL:      time.Hour,
		RefreshTokenTTL:     30 * 24 * time.Hour,
		DBMaxOpenConns:      int(getenvInt64("DB_MAX_CONNECTIONS", 10)),
		DBMaxIdleConns:      int(getenvInt64("DB_MIN_CONNECTIONS", 2)),
		RequestTimeout:      time.Duration(getenvInt64("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		TrustGatewayHeaders: getenvBool("TRUST_GATEWAY_HEADERS", false),
		PeerURLs:            peers,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

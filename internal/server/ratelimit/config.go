package ratelimit

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every limiter environment variable, e.g. RATE_LIMIT_ENABLED.
const EnvPrefix = "RATE_LIMIT"

// Built-in limiter settings, used when the environment leaves a value unset or invalid.
const (
	defaultLimit           = 1000
	defaultWindow          = time.Minute
	defaultCleanupInterval = 5 * time.Minute
	defaultIdleTTL         = time.Hour
)

// EndpointConfig is the token-bucket budget of one route. A Path ending in "/" covers
// every path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per Window
	Window time.Duration
	Burst  int // defaults to Limit when 0
}

// LoadConfig reads the limiter settings from RATE_LIMIT_ENABLED, RATE_LIMIT_DEFAULT_LIMIT,
// RATE_LIMIT_DEFAULT_WINDOW, RATE_LIMIT_CLEANUP_INTERVAL, RATE_LIMIT_IDLE_TTL and the
// comma-separated client lists RATE_LIMIT_WHITELIST and RATE_LIMIT_BLACKLIST.
func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	enabled, err := strconv.ParseBool(v.GetString("enabled"))
	if err != nil {
		enabled = true
	}
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    positiveInt(v, "default_limit", defaultLimit),
		DefaultWindow:   positiveDuration(v, "default_window", defaultWindow),
		CleanupInterval: positiveDuration(v, "cleanup_interval", defaultCleanupInterval),
		IdleTTL:         positiveDuration(v, "idle_ttl", defaultIdleTTL),
		Whitelist:       clientSet(v.GetString("whitelist")),
		Blacklist:       clientSet(v.GetString("blacklist")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route budgets. Routes not listed share the
// default limit; /health is never limited.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Admin
		{Path: "/catalog/reload", Method: http.MethodPost, Limit: 10, Window: time.Hour, Burst: 2},
		{Path: "/auth/token", Method: http.MethodPost, Limit: 20, Window: time.Minute, Burst: 5},

		// Scoring and validation
		{Path: "/recommendations/batch", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 5},
		{Path: "/recommendations", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/catalog/report", Method: http.MethodGet, Limit: 60, Window: time.Minute, Burst: 10},
	}
}

func positiveInt(v *viper.Viper, key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func positiveDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// clientSet parses a comma-separated list of client addresses.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, client := range strings.Split(list, ",") {
		if client = strings.TrimSpace(client); client != "" {
			set[client] = true
		}
	}
	return set
}

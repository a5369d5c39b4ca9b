// Package config provides configuration loading and validation for the career advisor.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the environment,
// e.g. catalog.path is read from CAREER_CATALOG_PATH.
const EnvPrefix = "CAREER"

// Catalog source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config represents the career advisor configuration. Values come from (lowest to highest
// precedence) defaults, an optional YAML/JSON file, CAREER_* environment variables and flags.
type Config struct {
	Catalog     CatalogConfig `mapstructure:"catalog"`
	DatabaseURL string        `mapstructure:"database_url"` // PostgreSQL connection URL
	SQLitePath  string        `mapstructure:"sqlite_path"`  // SQLite database file
	Server      ServerConfig  `mapstructure:"server"`
	TopN        int           `mapstructure:"top_n"` // Default number of recommendations
	Log         LogConfig     `mapstructure:"log"`
	JWT         JWTConfig     `mapstructure:"jwt"`
	Admin       AdminConfig   `mapstructure:"admin"`
}

// CatalogConfig selects where the career catalog is read from.
type CatalogConfig struct {
	Source      string        `mapstructure:"source"` // csv, postgres or sqlite
	Path        string        `mapstructure:"path"`   // CSV file path
	Table       string        `mapstructure:"table"`  // Table name for database sources
	LoadTimeout time.Duration `mapstructure:"load_timeout"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port             int `mapstructure:"port"`
	BatchConcurrency int `mapstructure:"batch_concurrency"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// AdminConfig holds the operator credentials accepted by the token endpoint.
type AdminConfig struct {
	PasswordHash string `mapstructure:"password_hash"` // bcrypt hash
	Pepper       string `mapstructure:"pepper"`
	BcryptCost   int    `mapstructure:"bcrypt_cost"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Catalog: CatalogConfig{
			Source:      SourceCSV,
			Path:        "careers.csv",
			Table:       "careers",
			LoadTimeout: 10 * time.Second,
		},
		Server: ServerConfig{
			Port:             8080,
			BatchConcurrency: 8,
		},
		TopN: 5,
		JWT: JWTConfig{
			ExpirationHours: 24,
		},
		Admin: AdminConfig{
			BcryptCost: 12,
		},
	}
}

// SetDefaults registers Defaults on v so that every key is known to viper's env lookup.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("catalog.source", d.Catalog.Source)
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("catalog.table", d.Catalog.Table)
	v.SetDefault("catalog.load_timeout", d.Catalog.LoadTimeout)
	v.SetDefault("database_url", "")
	v.SetDefault("sqlite_path", "")
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.batch_concurrency", d.Server.BatchConcurrency)
	v.SetDefault("top_n", d.TopN)
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_hours", d.JWT.ExpirationHours)
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("admin.pepper", "")
	v.SetDefault("admin.bcrypt_cost", d.Admin.BcryptCost)
}

// Load reads configuration with a fresh viper instance. An empty path skips the file.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith reads configuration into cfg using v, which may already carry bound flags.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names shared with other tooling.
	bindings := map[string][]string{
		"database_url":         {EnvPrefix + "_DATABASE_URL", "DATABASE_URL"},
		"jwt.secret":           {EnvPrefix + "_JWT_SECRET", "JWT_SECRET"},
		"jwt.expiration_hours": {EnvPrefix + "_JWT_EXPIRATION_HOURS", "JWT_EXPIRATION_HOURS"},
		"admin.pepper":         {EnvPrefix + "_ADMIN_PEPPER", "PASSWORD_PEPPER"},
		"admin.bcrypt_cost":    {EnvPrefix + "_ADMIN_BCRYPT_COST", "BCRYPT_COST"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// JWT and admin settings are checked separately by the commands that need them.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourceCSV:
		if c.Catalog.Path == "" {
			return fmt.Errorf("config error: 'catalog.path' is required for the csv source")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres source")
		}
	case SourceSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("config error: 'sqlite_path' is required for the sqlite source")
		}
	default:
		return fmt.Errorf("config error: unknown catalog source %q (want csv, postgres or sqlite)", c.Catalog.Source)
	}

	if c.Catalog.Source != SourceCSV && c.Catalog.Table == "" {
		return fmt.Errorf("config error: 'catalog.table' is required for database sources")
	}
	if c.Catalog.LoadTimeout < 0 {
		return fmt.Errorf("config error: 'catalog.load_timeout' must be non-negative")
	}
	if c.TopN < 1 {
		return fmt.Errorf("config error: 'top_n' must be at least 1")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range: %d", c.Server.Port)
	}
	if c.Server.BatchConcurrency < 0 {
		return fmt.Errorf("config error: 'server.batch_concurrency' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Catalog.Source == "" {
		result.Catalog.Source = defaults.Catalog.Source
	}
	if result.Catalog.Path == "" {
		result.Catalog.Path = defaults.Catalog.Path
	}
	if result.Catalog.Table == "" {
		result.Catalog.Table = defaults.Catalog.Table
	}
	if result.Catalog.LoadTimeout == 0 {
		result.Catalog.LoadTimeout = defaults.Catalog.LoadTimeout
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SQLitePath == "" {
		result.SQLitePath = defaults.SQLitePath
	}
	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Server.BatchConcurrency == 0 {
		result.Server.BatchConcurrency = defaults.Server.BatchConcurrency
	}
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}
	if result.JWT.Secret == "" {
		result.JWT.Secret = defaults.JWT.Secret
	}
	if result.JWT.ExpirationHours == 0 {
		result.JWT.ExpirationHours = defaults.JWT.ExpirationHours
	}
	if result.Admin.BcryptCost == 0 {
		result.Admin.BcryptCost = defaults.Admin.BcryptCost
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}

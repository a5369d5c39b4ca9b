package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/jonathan/career-advisor/internal/config"
	"github.com/jonathan/career-advisor/internal/db"
	"github.com/jonathan/career-advisor/internal/logger"
)

var configPath string

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"catalog-source": "catalog.source",
	"catalog-path":   "catalog.path",
	"catalog-table":  "catalog.table",
	"database-url":   "database_url",
	"sqlite-path":    "sqlite_path",
	"top-n":          "top_n",
	"log-json":       "log.json",
	"debug":          "log.debug",
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a YAML or JSON config file")
	flags.String("catalog-source", "", "Catalog source: csv, postgres or sqlite")
	flags.String("catalog-path", "", "Path to the catalog CSV file")
	flags.String("catalog-table", "", "Catalog table name for database sources")
	flags.String("database-url", "", "PostgreSQL connection URL")
	flags.String("sqlite-path", "", "SQLite database file")
	flags.Int("top-n", 0, "Number of careers to return")
	flags.Bool("log-json", false, "Log as JSON")
	flags.Bool("debug", false, "Enable debug logging")
}

// loadConfig merges defaults, the config file, CAREER_* env and flags, then validates.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	for name, key := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	cfg, err := config.LoadWith(v, configPath)
	if err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// setup loads the config and builds the logger for a command.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

// unavailableSource stands in for a database that could not be opened, so that the
// validator reports the failure and the loader falls back.
type unavailableSource struct {
	name string
	err  error
}

func (s *unavailableSource) Name() string { return s.name }

func (s *unavailableSource) Read(_ context.Context) (*catalog.Table, error) {
	return nil, &catalog.SourceError{Source: s.name, Message: "connection failed", Cause: s.err}
}

// openSource builds the configured catalog source. The returned close function is never nil.
func openSource(ctx context.Context, cfg *config.Config, log *zap.Logger) (catalog.Source, func()) {
	name := cfg.Catalog.Source + ":" + cfg.Catalog.Table

	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn("failed to connect to PostgreSQL", zap.Error(err))
			return &unavailableSource{name: name, err: err}, func() {}
		}
		return &catalog.QuerySource{Kind: config.SourcePostgres, Table: cfg.Catalog.Table, Querier: database}, database.Close

	case config.SourceSQLite:
		lite, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			log.Warn("failed to open SQLite database", zap.Error(err))
			return &unavailableSource{name: name, err: err}, func() {}
		}
		return &catalog.QuerySource{Kind: config.SourceSQLite, Table: cfg.Catalog.Table, Querier: lite}, func() {
			if err := lite.Close(); err != nil {
				log.Warn("failed to close SQLite database", zap.Error(err))
			}
		}

	default:
		return &catalog.CSVSource{Path: cfg.Catalog.Path}, func() {}
	}
}

// loadCatalog reads the configured source with the loader's fallback semantics.
func loadCatalog(ctx context.Context, cfg *config.Config, log *zap.Logger) *catalog.Catalog {
	ctx, cancel := withLoadTimeout(ctx, cfg)
	defer cancel()

	src, closeSource := openSource(ctx, cfg, log)
	defer closeSource()

	return catalog.Load(ctx, src, log)
}

func withLoadTimeout(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.Catalog.LoadTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.Catalog.LoadTimeout)
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/jonathan/career-advisor/internal/config"
	"github.com/jonathan/career-advisor/internal/db"
)

var importCatalogCmd = &cobra.Command{
	Use:   "import-catalog",
	Short: "Load a catalog CSV into the configured database",
	Long: "Validates a catalog CSV and, when it is valid, replaces the contents of the configured PostgreSQL " +
		"or SQLite catalog table with it.",
	RunE: runImportCatalog,
}

var importCatalogFrom string

func init() {
	importCatalogCmd.Flags().StringVarP(&importCatalogFrom, "from", "f", "", "Catalog CSV file to import (required)")
	if err := importCatalogCmd.MarkFlagRequired("from"); err != nil {
		panic(fmt.Sprintf("failed to mark from flag as required: %v", err))
	}
	rootCmd.AddCommand(importCatalogCmd)
}

// tableReplacer is implemented by both database backends.
type tableReplacer interface {
	ReplaceTable(ctx context.Context, table string, t *catalog.Table) error
}

func runImportCatalog(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	src := &catalog.CSVSource{Path: importCatalogFrom}

	table, err := src.Read(ctx)
	if err != nil {
		return err
	}
	report := catalog.ValidateTable(table)
	if !report.Valid {
		printReport(cmd, src.Name(), report)
		return fmt.Errorf("refusing to import invalid catalog %s", importCatalogFrom)
	}
	if len(table.Rows) == 0 {
		return fmt.Errorf("refusing to import empty catalog %s", importCatalogFrom)
	}

	target, closeTarget, err := openReplacer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeTarget()

	if err := target.ReplaceTable(ctx, cfg.Catalog.Table, table); err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d careers into %s:%s\n", len(table.Rows), cfg.Catalog.Source, cfg.Catalog.Table)
	return nil
}

func openReplacer(ctx context.Context, cfg *config.Config) (tableReplacer, func(), error) {
	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return database, database.Close, nil
	case config.SourceSQLite:
		lite, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return lite, func() { _ = lite.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("import-catalog needs a database source, got %q", cfg.Catalog.Source)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-advisor/internal/catalog"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the loaded catalog as CSV",
	Long: "Loads the configured catalog (falling back to the built-in catalog on failure) and writes it in the " +
		"catalog CSV format, to --out or stdout.",
	RunE: runExport,
}

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output CSV path (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	snapshot := loadCatalog(cmd.Context(), cfg, log)

	if exportOut == "" {
		return catalog.WriteCSV(cmd.OutOrStdout(), snapshot.Careers())
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", exportOut, err)
	}
	if err := catalog.WriteCSV(f, snapshot.Careers()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d careers to %s\n", snapshot.Len(), exportOut)
	return nil
}

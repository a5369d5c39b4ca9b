package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/jonathan/career-advisor/internal/types"
)

var validateCatalogCmd = &cobra.Command{
	Use:   "validate-catalog",
	Short: "Check the configured career catalog",
	Long:  "Validates the configured catalog source and prints the report. Exits non-zero when the catalog has errors.",
	RunE:  runValidateCatalog,
}

var validateCatalogJSON bool

func init() {
	validateCatalogCmd.Flags().BoolVar(&validateCatalogJSON, "json", false, "Print the report as JSON")
	rootCmd.AddCommand(validateCatalogCmd)
}

func runValidateCatalog(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := withLoadTimeout(cmd.Context(), cfg)
	defer cancel()

	src, closeSource := openSource(ctx, cfg, log)
	defer closeSource()

	report := catalog.Validate(ctx, src)

	out := cmd.OutOrStdout()
	if validateCatalogJSON {
		if err := printJSON(out, report); err != nil {
			return err
		}
	} else {
		printReport(cmd, src.Name(), report)
	}

	if !report.Valid {
		return fmt.Errorf("catalog %s is invalid (%d errors)", src.Name(), len(report.Errors))
	}
	return nil
}

func printReport(cmd *cobra.Command, name string, report *types.ValidationReport) {
	out := cmd.OutOrStdout()
	status := "VALID"
	if !report.Valid {
		status = "INVALID"
	}
	_, _ = fmt.Fprintf(out, "Catalog %s: %s\n", name, status)

	for _, e := range report.Errors {
		_, _ = fmt.Fprintf(out, "  error: %s\n", e)
	}
	for _, w := range report.Warnings {
		_, _ = fmt.Fprintf(out, "  warning: %s\n", w)
	}

	stats := report.Stats
	if stats.IsEmpty() {
		return
	}
	_, _ = fmt.Fprintf(out, "  careers: %d\n", stats.TotalCareers)
	_, _ = fmt.Fprintf(out, "  education levels: %s\n", strings.Join(stats.UniqueEducationLevels, ", "))
	if s := stats.SalaryRange; s != nil {
		_, _ = fmt.Fprintf(out, "  salary: %d-%d (avg %d-%d)\n", s.Min, s.Max, s.AvgMin, s.AvgMax)
	}
	if e := stats.ExperienceRange; e != nil {
		_, _ = fmt.Fprintf(out, "  experience: %d-%d years (avg %.1f)\n", e.Min, e.Max, e.Avg)
	}
}

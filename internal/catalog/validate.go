package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/career-advisor/internal/schemas"
	"github.com/jonathan/career-advisor/internal/types"
)

// Validate reads src and checks it. Malformed data and read failures are reported in
// the returned report; Validate itself never fails.
func Validate(ctx context.Context, src Source) *types.ValidationReport {
	table, err := src.Read(ctx)
	return reportFor(table, err)
}

func reportFor(table *Table, readErr error) *types.ValidationReport {
	if readErr != nil {
		report := types.NewValidationReport()
		var srcErr *SourceError
		if errors.Is(readErr, fs.ErrNotExist) && errors.As(readErr, &srcErr) {
			report.AddError(fmt.Sprintf("Catalog source not found: %s", srcErr.Source))
		} else {
			report.AddError(fmt.Sprintf("Failed to read catalog source: %v", readErr))
		}
		return report
	}
	return ValidateTable(table)
}

// ValidateTable runs the structural and semantic checks on an in-memory table.
// Missing columns and numeric coercion failures stop the checks early; every other
// finding is collected.
func ValidateTable(table *Table) *types.ValidationReport {
	report := types.NewValidationReport()

	if table == nil || len(table.Rows) == 0 {
		report.AddWarning("Catalog source is empty.")
		return report
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		report.AddError("Missing required columns: " + formatList(missing))
		return report
	}

	rows := table.Rows

	if dups := duplicateIDs(rows); len(dups) > 0 {
		report.AddError("Duplicate career IDs found: " + formatList(dups))
	}
	if blank := titlesWhere(rows, func(row map[string]string) bool {
		return strings.TrimSpace(row[ColumnID]) == ""
	}); len(blank) > 0 {
		report.AddError("Empty career IDs found for: " + formatList(blank))
	}

	numbers := make(map[string][]float64, len(NumericColumns))
	numericOK := true
	for _, col := range NumericColumns {
		values := make([]float64, len(rows))
		var bad []string
		for i, row := range rows {
			v, ok := parseNumber(row[col])
			if !ok {
				bad = append(bad, row[ColumnTitle])
			}
			values[i] = v
		}
		if len(bad) > 0 {
			report.AddError(fmt.Sprintf("Non-numeric or empty values in '%s': %s", col, formatList(bad)))
			numericOK = false
		}
		numbers[col] = values
	}
	if !numericOK {
		return report
	}

	for _, col := range JSONColumns {
		var malformed, misshapen []string
		for _, row := range rows {
			raw := strings.TrimSpace(row[col])
			if raw == "" {
				continue
			}
			if !json.Valid([]byte(raw)) {
				malformed = append(malformed, row[ColumnTitle])
				continue
			}
			if err := schemas.Validate(col, []byte(raw)); err != nil {
				misshapen = append(misshapen, row[ColumnTitle])
				continue
			}
			if err := decodeJSONColumn(col, raw); err != nil {
				misshapen = append(misshapen, row[ColumnTitle])
			}
		}
		if len(malformed) > 0 {
			report.AddError(fmt.Sprintf("Invalid JSON format in '%s': %s", col, formatList(malformed)))
		}
		if len(misshapen) > 0 {
			report.AddError(fmt.Sprintf("Invalid structure in '%s': %s", col, formatList(misshapen)))
		}
	}

	var salaryIssues []string
	for i, row := range rows {
		if numbers[ColumnSalaryMin][i] >= numbers[ColumnSalaryMax][i] {
			salaryIssues = append(salaryIssues, row[ColumnTitle])
		}
	}
	if len(salaryIssues) > 0 {
		report.AddWarning("Salary min is greater than or equal to max for: " + formatList(salaryIssues))
	}

	for _, col := range []string{ColumnGrowthPotential, ColumnJobMarketDemand} {
		var outOfRange []string
		for i, row := range rows {
			if v := numbers[col][i]; v < 1 || v > 10 {
				outOfRange = append(outOfRange, row[ColumnTitle])
			}
		}
		if len(outOfRange) > 0 {
			report.AddWarning(fmt.Sprintf("Values in '%s' are outside the valid range of 1-10 for: %s", col, formatList(outOfRange)))
		}
	}

	if report.Valid {
		report.Stats = computeStats(rows, numbers)
	}

	return report
}

func computeStats(rows []map[string]string, numbers map[string][]float64) types.CatalogStats {
	var education []string
	seen := make(map[string]bool)
	for _, row := range rows {
		level := strings.TrimSpace(row[ColumnMinEducation])
		if level == "" || seen[level] {
			continue
		}
		seen[level] = true
		education = append(education, level)
	}

	salaryMin := numbers[ColumnSalaryMin]
	salaryMax := numbers[ColumnSalaryMax]
	experience := numbers[ColumnMinExperience]

	return types.CatalogStats{
		TotalCareers:          len(rows),
		UniqueEducationLevels: education,
		SalaryRange: &types.SalaryStats{
			Min:    int(minOf(salaryMin)),
			Max:    int(maxOf(salaryMax)),
			AvgMin: int(mean(salaryMin)),
			AvgMax: int(mean(salaryMax)),
		},
		ExperienceRange: &types.ExperienceStats{
			Min: int(minOf(experience)),
			Max: int(maxOf(experience)),
			Avg: math.Round(mean(experience)*10) / 10,
		},
	}
}

// duplicateIDs lists each id that occurs more than once, in order of its second occurrence.
func duplicateIDs(rows []map[string]string) []string {
	counts := make(map[string]int, len(rows))
	var dups []string
	for _, row := range rows {
		id := strings.TrimSpace(row[ColumnID])
		if id == "" {
			continue
		}
		counts[id]++
		if counts[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}

func titlesWhere(rows []map[string]string, pred func(map[string]string) bool) []string {
	var titles []string
	for _, row := range rows {
		if pred(row) {
			titles = append(titles, row[ColumnTitle])
		}
	}
	return titles
}

// maxCellMagnitude bounds numeric cells so that they convert to int exactly.
const maxCellMagnitude = math.MaxInt32

// parseNumber accepts a finite decimal number within ±maxCellMagnitude. Blank cells fail.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.Abs(v) > maxCellMagnitude {
		return 0, false
	}
	return v, true
}

func formatList(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = math.Min(m, v)
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = math.Max(m, v)
	}
	return m
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

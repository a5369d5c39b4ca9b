// Package catalog reads, validates and publishes the career catalog.
package catalog

import (
	"context"
	"slices"
)

// Catalog column names.
const (
	ColumnID                = "id"
	ColumnTitle             = "title"
	ColumnDescription       = "description"
	ColumnRequiredSkills    = "required_skills"
	ColumnRelevantInterests = "relevant_interests"
	ColumnMinExperience     = "min_experience"
	ColumnMinEducation      = "min_education"
	ColumnSalaryMin         = "salary_min"
	ColumnSalaryMax         = "salary_max"
	ColumnWorkStyles        = "work_style_compatibility"
	ColumnGrowthPotential   = "growth_potential"
	ColumnJobMarketDemand   = "job_market_demand"
)

// RequiredColumns lists every column a catalog source must provide, in report order.
var RequiredColumns = []string{
	ColumnID,
	ColumnTitle,
	ColumnDescription,
	ColumnRequiredSkills,
	ColumnRelevantInterests,
	ColumnMinExperience,
	ColumnMinEducation,
	ColumnSalaryMin,
	ColumnSalaryMax,
	ColumnWorkStyles,
	ColumnGrowthPotential,
	ColumnJobMarketDemand,
}

// NumericColumns are coerced to numbers, checked in this order.
var NumericColumns = []string{
	ColumnMinExperience,
	ColumnSalaryMin,
	ColumnSalaryMax,
	ColumnGrowthPotential,
	ColumnJobMarketDemand,
}

// JSONColumns hold JSON-encoded text, checked in this order.
var JSONColumns = []string{
	ColumnRequiredSkills,
	ColumnRelevantInterests,
	ColumnWorkStyles,
}

// Table is a raw, untyped catalog: one map per row keyed by column name.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the table header contains name.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// Source is anything a catalog Table can be read from.
type Source interface {
	// Name identifies the source in logs and reports.
	Name() string
	// Read returns the whole table. Rows are returned in source order.
	Read(ctx context.Context) (*Table, error)
}

// StaticSource serves a Table that is already in memory.
type StaticSource struct {
	Label string
	Table *Table
}

// Name returns the label.
func (s *StaticSource) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

// Read returns the table, or a SourceError if none was set.
func (s *StaticSource) Read(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, &SourceError{Source: s.Name(), Message: "read cancelled", Cause: err}
	}
	if s.Table == nil {
		return nil, &SourceError{Source: s.Name(), Message: "no table"}
	}
	return s.Table, nil
}

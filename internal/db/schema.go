package db

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-advisor/internal/catalog"
)

type column struct {
	name     string
	postgres string
	sqlite   string
}

// careerColumns is the storage layout of a catalog table, in catalog column order.
var careerColumns = []column{
	{catalog.ColumnID, "TEXT PRIMARY KEY", "TEXT PRIMARY KEY"},
	{catalog.ColumnTitle, "TEXT NOT NULL", "TEXT NOT NULL"},
	{catalog.ColumnDescription, "TEXT NOT NULL DEFAULT ''", "TEXT NOT NULL DEFAULT ''"},
	{catalog.ColumnRequiredSkills, "JSONB", "TEXT"},
	{catalog.ColumnRelevantInterests, "JSONB", "TEXT"},
	{catalog.ColumnMinExperience, "NUMERIC", "REAL"},
	{catalog.ColumnMinEducation, "TEXT", "TEXT"},
	{catalog.ColumnSalaryMin, "NUMERIC", "REAL"},
	{catalog.ColumnSalaryMax, "NUMERIC", "REAL"},
	{catalog.ColumnWorkStyles, "JSONB", "TEXT"},
	{catalog.ColumnGrowthPotential, "NUMERIC", "REAL"},
	{catalog.ColumnJobMarketDemand, "NUMERIC", "REAL"},
}

func (c column) isText(postgres bool) bool {
	typ := c.sqlite
	if postgres {
		typ = c.postgres
	}
	return strings.HasPrefix(typ, "TEXT")
}

func createTableSQL(quotedTable string, postgres bool) string {
	defs := make([]string, len(careerColumns))
	for i, c := range careerColumns {
		typ := c.sqlite
		if postgres {
			typ = c.postgres
		}
		defs[i] = c.name + " " + typ
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", quotedTable, strings.Join(defs, ",\n\t"))
}

// insertSQL builds the row insert. Blank cells of typed columns are stored as NULL.
func insertSQL(quotedTable string, postgres bool) string {
	names := make([]string, len(careerColumns))
	values := make([]string, len(careerColumns))
	for i, c := range careerColumns {
		names[i] = c.name
		placeholder := "?"
		if postgres {
			placeholder = fmt.Sprintf("$%d::text", i+1)
		}
		switch {
		case c.isText(postgres):
			values[i] = placeholder
		case postgres:
			typ := strings.Fields(c.postgres)[0]
			values[i] = fmt.Sprintf("NULLIF(%s, '')::%s", placeholder, typ)
		default:
			values[i] = fmt.Sprintf("NULLIF(%s, '')", placeholder)
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quotedTable, strings.Join(names, ", "), strings.Join(values, ", "))
}

func rowArgs(row map[string]string) []any {
	args := make([]any, len(careerColumns))
	for i, c := range careerColumns {
		args[i] = row[c.name]
	}
	return args
}

package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-advisor/internal/types"
)

func TestValidateTable_ValidCatalogStats(t *testing.T) {
	report := ValidateTable(tableOf(sampleRows()))

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)

	stats := report.Stats
	assert.Equal(t, 3, stats.TotalCareers)
	assert.Equal(t, []string{"bachelor", "master", "associate"}, stats.UniqueEducationLevels)
	require.NotNil(t, stats.SalaryRange)
	assert.Equal(t, types.SalaryStats{Min: 60000, Max: 140000, AvgMin: 70000, AvgMax: 118333}, *stats.SalaryRange)
	require.NotNil(t, stats.ExperienceRange)
	assert.Equal(t, types.ExperienceStats{Min: 0, Max: 3, Avg: 1.7}, *stats.ExperienceRange)
}

func TestValidateTable_MissingColumns(t *testing.T) {
	rows := sampleRows()
	for _, row := range rows {
		delete(row, ColumnSalaryMax)
		delete(row, ColumnRequiredSkills)
	}
	table := &Table{Rows: rows}
	for _, col := range RequiredColumns {
		if col != ColumnSalaryMax && col != ColumnRequiredSkills {
			table.Columns = append(table.Columns, col)
		}
	}

	report := ValidateTable(table)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Missing required columns: [required_skills, salary_max]", report.Errors[0])
	assert.True(t, report.Stats.IsEmpty())
}

func TestValidateTable_DuplicateIDs(t *testing.T) {
	rows := sampleRows()
	dup := sampleRows()
	rows = append(rows, dup[0], dup[1], sampleRows()[0])

	report := ValidateTable(tableOf(rows))

	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors, "Duplicate career IDs found: [software_engineer, data_scientist]")
	assert.True(t, report.Stats.IsEmpty())
}

func TestValidateTable_EmptyID(t *testing.T) {
	rows := sampleRows()
	rows[1][ColumnID] = "  "

	report := ValidateTable(tableOf(rows))

	assert.False(t, report.Valid)
	assert.Equal(t, []string{"Empty career IDs found for: [Data Scientist]"}, report.Errors)
}

func TestValidateTable_NonNumericStopsEarly(t *testing.T) {
	rows := sampleRows()
	rows[2][ColumnSalaryMin] = "n/a"
	rows[1][ColumnGrowthPotential] = ""
	rows[0][ColumnRequiredSkills] = "{broken"

	report := ValidateTable(tableOf(rows))

	assert.False(t, report.Valid)
	assert.Equal(t, []string{
		"Non-numeric or empty values in 'salary_min': [Registered Nurse]",
		"Non-numeric or empty values in 'growth_potential': [Data Scientist]",
	}, report.Errors, "JSON checks must not run after a numeric failure")
	assert.True(t, report.Stats.IsEmpty())
}

func TestValidateTable_NumericForms(t *testing.T) {
	rows := sampleRows()
	rows[0][ColumnMinExperience] = " 2.5 "
	rows[1][ColumnSalaryMin] = "8e4"
	rows[2][ColumnJobMarketDemand] = "NaN"

	report := ValidateTable(tableOf(rows))

	assert.Equal(t, []string{"Non-numeric or empty values in 'job_market_demand': [Registered Nurse]"}, report.Errors)
}

func TestValidateTable_InvalidJSON(t *testing.T) {
	rows := sampleRows()
	rows[0][ColumnRequiredSkills] = `{"programming": 2`
	rows[2][ColumnRequiredSkills] = `not json`
	rows[1][ColumnWorkStyles] = `["remote",]`

	report := ValidateTable(tableOf(rows))

	assert.False(t, report.Valid)
	assert.Equal(t, []string{
		"Invalid JSON format in 'required_skills': [Software Engineer, Registered Nurse]",
		"Invalid JSON format in 'work_style_compatibility': [Data Scientist]",
	}, report.Errors)
	assert.True(t, report.Stats.IsEmpty())
}

func TestValidateTable_InvalidStructure(t *testing.T) {
	rows := sampleRows()
	rows[0][ColumnRelevantInterests] = `{"technology": 9}`
	rows[1][ColumnWorkStyles] = `"remote"`

	report := ValidateTable(tableOf(rows))

	assert.False(t, report.Valid)
	assert.Equal(t, []string{
		"Invalid structure in 'relevant_interests': [Software Engineer]",
		"Invalid structure in 'work_style_compatibility': [Data Scientist]",
	}, report.Errors)
}

func TestValidateTable_RejectsCellsTheLoaderRejects(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  string
	}{
		{name: "skill names collide after normalization", column: ColumnRequiredSkills, value: `{"Programming": 2, "programming": 3}`},
		{name: "blank skill name", column: ColumnRequiredSkills, value: `{" ": 2}`},
		{name: "blank interest name", column: ColumnRelevantInterests, value: `{"  ": "high"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := sampleRows()
			rows[2][tt.column] = tt.value

			report := ValidateTable(tableOf(rows))

			assert.False(t, report.Valid)
			assert.Equal(t, []string{"Invalid structure in '" + tt.column + "': [Registered Nurse]"}, report.Errors)
		})
	}
}

func TestValidateTable_InterestLevelSpellings(t *testing.T) {
	for _, spelling := range []string{"VeryHigh", "very-high", "veryhigh", "Very High", "very_high"} {
		t.Run(spelling, func(t *testing.T) {
			rows := sampleRows()
			rows[2][ColumnRelevantInterests] = `{"healthcare": "` + spelling + `"}`

			report := ValidateTable(tableOf(rows))

			assert.True(t, report.Valid)
			assert.Empty(t, report.Errors)
		})
	}
}

func TestValidateTable_HugeNumbersRejected(t *testing.T) {
	rows := sampleRows()
	rows[0][ColumnSalaryMax] = "1e300"
	rows[1][ColumnMinExperience] = "-3e10"

	report := ValidateTable(tableOf(rows))

	assert.False(t, report.Valid)
	assert.Equal(t, []string{
		"Non-numeric or empty values in 'min_experience': [Data Scientist]",
		"Non-numeric or empty values in 'salary_max': [Software Engineer]",
	}, report.Errors)
}

func TestValidateTable_EmptyJSONCellsAllowed(t *testing.T) {
	rows := sampleRows()
	rows[2][ColumnRelevantInterests] = ""

	report := ValidateTable(tableOf(rows))

	assert.True(t, report.Valid)
}

func TestValidateTable_RangeWarnings(t *testing.T) {
	rows := sampleRows()
	rows[0][ColumnSalaryMin] = "120000"
	rows[1][ColumnSalaryMin] = "150000"
	rows[1][ColumnGrowthPotential] = "11"
	rows[2][ColumnJobMarketDemand] = "0"

	report := ValidateTable(tableOf(rows))

	assert.True(t, report.Valid, "range problems are warnings only")
	assert.Empty(t, report.Errors)
	assert.Equal(t, []string{
		"Salary min is greater than or equal to max for: [Software Engineer, Data Scientist]",
		"Values in 'growth_potential' are outside the valid range of 1-10 for: [Data Scientist]",
		"Values in 'job_market_demand' are outside the valid range of 1-10 for: [Registered Nurse]",
	}, report.Warnings)
	assert.Equal(t, 3, report.Stats.TotalCareers)
}

func TestValidateTable_Empty(t *testing.T) {
	report := ValidateTable(&Table{Columns: RequiredColumns})

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Equal(t, []string{"Catalog source is empty."}, report.Warnings)
	assert.True(t, report.Stats.IsEmpty())
}

func TestValidate_Sources(t *testing.T) {
	t.Run("csv file", func(t *testing.T) {
		report := Validate(context.Background(), &CSVSource{Path: writeFile(t, "careers.csv", sampleCSV)})
		assert.True(t, report.Valid)
		assert.Equal(t, 3, report.Stats.TotalCareers)
	})

	t.Run("missing file", func(t *testing.T) {
		report := Validate(context.Background(), &CSVSource{Path: "/nonexistent/careers.csv"})
		assert.False(t, report.Valid)
		assert.Equal(t, []string{"Catalog source not found: /nonexistent/careers.csv"}, report.Errors)
	})

	t.Run("unparseable file", func(t *testing.T) {
		report := Validate(context.Background(), &CSVSource{Path: writeFile(t, "careers.csv", "")})
		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 1)
		assert.Contains(t, report.Errors[0], "Failed to read catalog source")
	})

	t.Run("static without table", func(t *testing.T) {
		report := Validate(context.Background(), &StaticSource{})
		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 1)
	})
}

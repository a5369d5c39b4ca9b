package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/career-advisor/internal/types"
)

func TestLoad_CSV(t *testing.T) {
	src := &CSVSource{Path: writeFile(t, "careers.csv", sampleCSV)}

	c := Load(context.Background(), src, zap.NewNop())

	require.False(t, c.Fallback)
	assert.Equal(t, src.Path, c.Source)
	require.Equal(t, 3, c.Len())

	nurse, ok := c.Get("nurse")
	require.True(t, ok)
	assert.Equal(t, map[string]types.SkillLevel{"patient_care": types.Advanced}, nurse.RequiredSkills)
	assert.Equal(t, map[string]types.InterestLevel{"healthcare": types.VeryHigh}, nurse.RelevantInterests)
	assert.Equal(t, types.SalaryRange{Min: 60000, Max: 95000}, nurse.SalaryRange)
	assert.Equal(t, []string{"onsite"}, nurse.WorkStyles)
	assert.Equal(t, "associate", nurse.MinEducation)
	assert.Equal(t, 7, nurse.GrowthPotential)
	assert.Equal(t, 10, nurse.JobMarketDemand)

	ids := make([]string, 0, c.Len())
	for _, career := range c.Careers() {
		ids = append(ids, career.ID)
	}
	assert.Equal(t, []string{"software_engineer", "data_scientist", "nurse"}, ids, "source order is preserved")
}

func TestLoad_FallbackOnFailure(t *testing.T) {
	badLevel := sampleRows()
	badLevel[0][ColumnRequiredSkills] = `{"programming": 7}`

	tests := []struct {
		name string
		src  Source
	}{
		{name: "missing file", src: &CSVSource{Path: "/nonexistent/careers.csv"}},
		{name: "empty table", src: &StaticSource{Table: tableOf(nil)}},
		{name: "invalid level", src: &StaticSource{Table: tableOf(badLevel)}},
		{name: "missing column", src: &StaticSource{Table: &Table{Columns: []string{"id"}, Rows: []map[string]string{{"id": "x"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, observed := observer.New(zapcore.WarnLevel)

			c := Load(context.Background(), tt.src, zap.New(core))

			assert.True(t, c.Fallback)
			assert.Equal(t, FallbackSource, c.Source)
			require.Equal(t, 2, c.Len())
			for _, career := range c.Careers() {
				assert.True(t, IsFallbackID(career.ID))
			}
			assert.Equal(t, 1, observed.Len(), "fallback must be logged as a warning")
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(row map[string]string)
		field string
	}{
		{name: "empty id", edit: func(r map[string]string) { r[ColumnID] = "" }, field: ColumnID},
		{name: "non-numeric", edit: func(r map[string]string) { r[ColumnSalaryMax] = "lots" }, field: ColumnSalaryMax},
		{name: "out of int range", edit: func(r map[string]string) { r[ColumnSalaryMax] = "1e300" }, field: ColumnSalaryMax},
		{name: "bad skill level", edit: func(r map[string]string) { r[ColumnRequiredSkills] = `{"go": "guru"}` }, field: ColumnRequiredSkills},
		{name: "skills not an object", edit: func(r map[string]string) { r[ColumnRequiredSkills] = `[1]` }, field: ColumnRequiredSkills},
		{name: "duplicate interest", edit: func(r map[string]string) { r[ColumnRelevantInterests] = `{"AI": 2, "ai": 3}` }, field: ColumnRelevantInterests},
		{name: "styles not strings", edit: func(r map[string]string) { r[ColumnWorkStyles] = `[1, 2]` }, field: ColumnWorkStyles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := sampleRows()
			tt.edit(rows[1])

			careers, err := Decode(tableOf(rows))
			require.Error(t, err)
			assert.Nil(t, careers)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, 2, decodeErr.Row)
			assert.Equal(t, tt.field, decodeErr.Field)
		})
	}
}

func TestDecode_Normalization(t *testing.T) {
	rows := sampleRows()[:1]
	rows[0][ColumnRequiredSkills] = `{"Problem Solving": "Expert", "programming": 2.0}`
	rows[0][ColumnRelevantInterests] = ""
	rows[0][ColumnWorkStyles] = `["Remote", " "]`
	rows[0][ColumnMinEducation] = " Bachelor "
	rows[0][ColumnMinExperience] = "2.9"

	careers, err := Decode(tableOf(rows))
	require.NoError(t, err)
	require.Len(t, careers, 1)

	c := careers[0]
	assert.Equal(t, map[string]types.SkillLevel{"problem_solving": types.Expert, "programming": types.Intermediate}, c.RequiredSkills)
	assert.Empty(t, c.RelevantInterests)
	assert.NotNil(t, c.RelevantInterests)
	assert.Equal(t, []string{"remote"}, c.WorkStyles)
	assert.Equal(t, "bachelor", c.MinEducation)
	assert.Equal(t, 2, c.MinExperience)
}

func TestRoundTrip_LoadThenRevalidate(t *testing.T) {
	c := Load(context.Background(), &CSVSource{Path: writeFile(t, "careers.csv", sampleCSV)}, zap.NewNop())
	require.False(t, c.Fallback)

	table, err := ToTable(c.Careers())
	require.NoError(t, err)

	report := ValidateTable(table)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Equal(t, c.Len(), report.Stats.TotalCareers)
}

func TestRoundTrip_ValidatorAndLoaderAgree(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  string
	}{
		{name: "colliding skill names", column: ColumnRequiredSkills, value: `{"Programming": 2, "programming": 3}`},
		{name: "blank skill name", column: ColumnRequiredSkills, value: `{" ": 2}`},
		{name: "camel-case very high", column: ColumnRelevantInterests, value: `{"healthcare": "VeryHigh"}`},
		{name: "hyphenated very high", column: ColumnRelevantInterests, value: `{"healthcare": "very-high"}`},
		{name: "huge salary", column: ColumnSalaryMax, value: "1e300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := sampleRows()
			rows[2][tt.column] = tt.value
			table := tableOf(rows)

			report := ValidateTable(table)
			_, decodeErr := Decode(table)
			loaded := Load(context.Background(), &StaticSource{Table: table}, zap.NewNop())

			assert.Equal(t, report.Valid, decodeErr == nil, "validator and decoder must agree: errors=%v decode=%v", report.Errors, decodeErr)
			assert.Equal(t, !report.Valid, loaded.Fallback)
		})
	}
}

func TestDecode_VeryHighSpellings(t *testing.T) {
	rows := sampleRows()[2:]
	rows[0][ColumnRelevantInterests] = `{"healthcare": "VeryHigh", "Patient Safety": "very-high"}`

	careers, err := Decode(tableOf(rows))
	require.NoError(t, err)
	assert.Equal(t, map[string]types.InterestLevel{"healthcare": types.VeryHigh, "patient_safety": types.VeryHigh}, careers[0].RelevantInterests)
}

func TestRoundTrip_FallbackRevalidates(t *testing.T) {
	table, err := ToTable(FallbackCareers())
	require.NoError(t, err)

	report := ValidateTable(table)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
}

func TestFallbackCareers(t *testing.T) {
	careers := FallbackCareers()
	require.Len(t, careers, 2)

	se := careers[0]
	assert.Equal(t, FallbackSoftwareEngineerID, se.ID)
	assert.Equal(t, types.Advanced, se.RequiredSkills["problem_solving"])
	assert.Equal(t, 9, se.JobMarketDemand)

	ds := careers[1]
	assert.Equal(t, FallbackDataScientistID, ds.ID)
	assert.Equal(t, types.VeryHigh, ds.RelevantInterests["analytics"])
	assert.Equal(t, 10, ds.GrowthPotential)

	careers[0].RequiredSkills["programming"] = types.Expert
	assert.Equal(t, types.Intermediate, FallbackCareers()[0].RequiredSkills["programming"], "each call returns a fresh copy")

	assert.False(t, IsFallbackID("nurse"))
}

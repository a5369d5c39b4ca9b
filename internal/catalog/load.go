package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/career-advisor/internal/logger"
	"github.com/jonathan/career-advisor/internal/types"
)

// Load reads src and decodes it into a catalog snapshot. Any read or decode failure,
// and an empty result, is logged and answered with the built-in fallback catalog, so
// Load always returns a usable catalog.
func Load(ctx context.Context, src Source, log *zap.Logger) *Catalog {
	log = logger.WithSource(log, src.Name())

	careers, err := read(ctx, src)
	if err != nil {
		log.Warn("catalog load failed, using fallback catalog", zap.Error(err))
		return NewFallbackCatalog()
	}
	if len(careers) == 0 {
		log.Warn("catalog source has no careers, using fallback catalog")
		return NewFallbackCatalog()
	}

	log.Info("catalog loaded", zap.Int("careers", len(careers)))
	return NewCatalog(src.Name(), careers)
}

func read(ctx context.Context, src Source) ([]types.Career, error) {
	table, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(table)
}

// Decode converts every row of table into a Career. The first row that cannot be
// decoded fails the whole table with a *DecodeError.
func Decode(table *Table) ([]types.Career, error) {
	if table == nil {
		return nil, nil
	}
	for _, col := range RequiredColumns {
		if !table.HasColumn(col) {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	careers := make([]types.Career, 0, len(table.Rows))
	for i, row := range table.Rows {
		career, err := decodeRow(i+1, row)
		if err != nil {
			return nil, err
		}
		careers = append(careers, career)
	}
	return careers, nil
}

func decodeRow(n int, row map[string]string) (types.Career, error) {
	id := strings.TrimSpace(row[ColumnID])
	fail := func(field string, err error) (types.Career, error) {
		return types.Career{}, &DecodeError{Row: n, ID: id, Field: field, Cause: err}
	}

	if id == "" {
		return fail(ColumnID, fmt.Errorf("empty id"))
	}

	ints := make(map[string]int, len(NumericColumns))
	for _, col := range NumericColumns {
		v, ok := parseNumber(row[col])
		if !ok {
			return fail(col, fmt.Errorf("not a number: %q", row[col]))
		}
		ints[col] = int(math.Trunc(v))
	}

	skills, err := decodeLevels(row[ColumnRequiredSkills], types.ParseSkillLevel)
	if err != nil {
		return fail(ColumnRequiredSkills, err)
	}
	interests, err := decodeLevels(row[ColumnRelevantInterests], types.ParseInterestLevel)
	if err != nil {
		return fail(ColumnRelevantInterests, err)
	}
	styles, err := decodeWorkStyles(row[ColumnWorkStyles])
	if err != nil {
		return fail(ColumnWorkStyles, err)
	}

	return types.Career{
		ID:                id,
		Title:             strings.TrimSpace(row[ColumnTitle]),
		Description:       strings.TrimSpace(row[ColumnDescription]),
		RequiredSkills:    skills,
		RelevantInterests: interests,
		MinExperience:     ints[ColumnMinExperience],
		MinEducation:      types.NormalizeName(row[ColumnMinEducation]),
		SalaryRange: types.SalaryRange{
			Min: ints[ColumnSalaryMin],
			Max: ints[ColumnSalaryMax],
		},
		WorkStyles:      styles,
		GrowthPotential: ints[ColumnGrowthPotential],
		JobMarketDemand: ints[ColumnJobMarketDemand],
	}, nil
}

// decodeJSONColumn decodes one JSON cell the way decodeRow does, for the validator.
func decodeJSONColumn(col, raw string) error {
	var err error
	switch col {
	case ColumnRequiredSkills:
		_, err = decodeLevels(raw, types.ParseSkillLevel)
	case ColumnRelevantInterests:
		_, err = decodeLevels(raw, types.ParseInterestLevel)
	case ColumnWorkStyles:
		_, err = decodeWorkStyles(raw)
	}
	return err
}

// decodeLevels parses a JSON object of name -> level. Blank text is an empty map.
func decodeLevels[L ~int](raw string, parse func(any) (L, error)) (map[string]L, error) {
	out := make(map[string]L)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out, nil
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	for name, v := range obj {
		key := types.NormalizeName(name)
		if key == "" {
			return nil, fmt.Errorf("blank name")
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("duplicate name %q", name)
		}
		level, err := parse(v)
		if err != nil {
			return nil, err
		}
		out[key] = level
	}
	return out, nil
}

func decodeWorkStyles(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}

	var styles []string
	if err := json.Unmarshal([]byte(raw), &styles); err != nil {
		return nil, fmt.Errorf("invalid JSON string array: %w", err)
	}
	out := make([]string, 0, len(styles))
	for _, s := range styles {
		if style := types.NormalizeName(s); style != "" {
			out = append(out, style)
		}
	}
	return out, nil
}

// ToTable encodes careers back into catalog rows, the inverse of Decode.
func ToTable(careers []types.Career) (*Table, error) {
	table := &Table{
		Columns: append([]string(nil), RequiredColumns...),
		Rows:    make([]map[string]string, 0, len(careers)),
	}

	for _, c := range careers {
		skills, err := json.Marshal(nonNilMap(c.RequiredSkills))
		if err != nil {
			return nil, fmt.Errorf("failed to encode skills of %s: %w", c.ID, err)
		}
		interests, err := json.Marshal(nonNilMap(c.RelevantInterests))
		if err != nil {
			return nil, fmt.Errorf("failed to encode interests of %s: %w", c.ID, err)
		}
		styles := c.WorkStyles
		if styles == nil {
			styles = []string{}
		}
		stylesJSON, err := json.Marshal(styles)
		if err != nil {
			return nil, fmt.Errorf("failed to encode work styles of %s: %w", c.ID, err)
		}

		table.Rows = append(table.Rows, map[string]string{
			ColumnID:                c.ID,
			ColumnTitle:             c.Title,
			ColumnDescription:       c.Description,
			ColumnRequiredSkills:    string(skills),
			ColumnRelevantInterests: string(interests),
			ColumnMinExperience:     formatInt(c.MinExperience),
			ColumnMinEducation:      c.MinEducation,
			ColumnSalaryMin:         formatInt(c.SalaryRange.Min),
			ColumnSalaryMax:         formatInt(c.SalaryRange.Max),
			ColumnWorkStyles:        string(stylesJSON),
			ColumnGrowthPotential:   formatInt(c.GrowthPotential),
			ColumnJobMarketDemand:   formatInt(c.JobMarketDemand),
		})
	}
	return table, nil
}

func nonNilMap[L ~int](m map[string]L) map[string]L {
	if m == nil {
		return map[string]L{}
	}
	return m
}

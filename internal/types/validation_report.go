package types

// ValidationReport is the result of checking a catalog source before it is trusted.
// Errors block use of the catalog; warnings do not.
type ValidationReport struct {
	Valid    bool         `json:"valid"`
	Errors   []string     `json:"errors"`
	Warnings []string     `json:"warnings"`
	Stats    CatalogStats `json:"stats"`
}

// NewValidationReport returns a valid report with no findings.
func NewValidationReport() *ValidationReport {
	return &ValidationReport{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}
}

// AddError records a hard failure and marks the report invalid.
func (r *ValidationReport) AddError(msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, msg)
}

// AddWarning records a soft issue.
func (r *ValidationReport) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// CatalogStats summarises a valid catalog. The zero value marshals as {}.
type CatalogStats struct {
	TotalCareers          int              `json:"total_careers,omitempty"`
	UniqueEducationLevels []string         `json:"unique_education_levels,omitempty"`
	SalaryRange           *SalaryStats     `json:"salary_range,omitempty"`
	ExperienceRange       *ExperienceStats `json:"experience_range,omitempty"`
}

// IsEmpty reports whether no statistics were computed.
func (s CatalogStats) IsEmpty() bool {
	return s.TotalCareers == 0 && len(s.UniqueEducationLevels) == 0 &&
		s.SalaryRange == nil && s.ExperienceRange == nil
}

// SalaryStats holds salary bounds and the truncated averages of salary_min and salary_max.
type SalaryStats struct {
	Min    int `json:"min"`
	Max    int `json:"max"`
	AvgMin int `json:"avg_min"`
	AvgMax int `json:"avg_max"`
}

// ExperienceStats holds min_experience bounds and its average rounded to one decimal place.
type ExperienceStats struct {
	Min int     `json:"min"`
	Max int     `json:"max"`
	Avg float64 `json:"avg"`
}

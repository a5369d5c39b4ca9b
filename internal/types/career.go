package types

// SalaryRange is the typical salary band of a career.
type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether salary lies inside the inclusive range.
func (r SalaryRange) Contains(salary int) bool {
	return salary >= r.Min && salary <= r.Max
}

// Career is a catalog entry describing one occupation's requirements and outlook.
// Careers are immutable once loaded into a catalog.
type Career struct {
	ID                string                   `json:"id"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description"`
	RequiredSkills    map[string]SkillLevel    `json:"required_skills"`
	RelevantInterests map[string]InterestLevel `json:"relevant_interests"`
	MinExperience     int                      `json:"min_experience"`
	MinEducation      string                   `json:"min_education"`
	SalaryRange       SalaryRange              `json:"salary_range"`
	WorkStyles        []string                 `json:"work_style_compatibility"`
	GrowthPotential   int                      `json:"growth_potential"`  // 1-10
	JobMarketDemand   int                      `json:"job_market_demand"` // 1-10
}

// SupportsWorkStyle reports whether style is one of the career's compatible work styles.
func (c *Career) SupportsWorkStyle(style string) bool {
	want := NormalizeName(style)
	if want == "" {
		return false
	}
	for _, s := range c.WorkStyles {
		if NormalizeName(s) == want {
			return true
		}
	}
	return false
}

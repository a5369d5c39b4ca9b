package catalog

import (
	"slices"

	"github.com/jonathan/career-advisor/internal/types"
)

// Fallback catalog identifiers.
const (
	FallbackSource             = "builtin:fallback"
	FallbackSoftwareEngineerID = "software_engineer"
	FallbackDataScientistID    = "data_scientist"
)

// FallbackCareers returns a fresh copy of the built-in catalog used when the
// configured source cannot be loaded.
func FallbackCareers() []types.Career {
	return []types.Career{
		{
			ID:          FallbackSoftwareEngineerID,
			Title:       "Software Engineer",
			Description: "Develop and maintain software applications",
			RequiredSkills: map[string]types.SkillLevel{
				"programming":     types.Intermediate,
				"problem_solving": types.Advanced,
			},
			RelevantInterests: map[string]types.InterestLevel{
				"technology": types.High,
				"innovation": types.High,
			},
			MinExperience:   2,
			MinEducation:    "bachelor",
			SalaryRange:     types.SalaryRange{Min: 70000, Max: 120000},
			WorkStyles:      []string{"remote", "hybrid", "onsite"},
			GrowthPotential: 9,
			JobMarketDemand: 9,
		},
		{
			ID:          FallbackDataScientistID,
			Title:       "Data Scientist",
			Description: "Analyze complex data to extract business insights",
			RequiredSkills: map[string]types.SkillLevel{
				"statistics":  types.Advanced,
				"programming": types.Intermediate,
			},
			RelevantInterests: map[string]types.InterestLevel{
				"analytics": types.VeryHigh,
				"research":  types.High,
			},
			MinExperience:   3,
			MinEducation:    "bachelor",
			SalaryRange:     types.SalaryRange{Min: 80000, Max: 140000},
			WorkStyles:      []string{"remote", "hybrid"},
			GrowthPotential: 10,
			JobMarketDemand: 8,
		},
	}
}

// IsFallbackID reports whether id belongs to the built-in catalog.
func IsFallbackID(id string) bool {
	return slices.Contains([]string{FallbackSoftwareEngineerID, FallbackDataScientistID}, id)
}

// NewFallbackCatalog returns an unpublished snapshot of the built-in catalog.
func NewFallbackCatalog() *Catalog {
	c := NewCatalog(FallbackSource, FallbackCareers())
	c.Fallback = true
	return c
}

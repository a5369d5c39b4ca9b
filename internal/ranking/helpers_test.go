package ranking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-advisor/internal/types"
)

// referenceProfile and referenceCareer form the worked example used across tests.
func referenceProfile(t *testing.T) *types.UserProfile {
	t.Helper()
	return mustProfile(t, types.ProfileInput{
		Skills:             map[string]types.SkillLevel{"programming": types.Intermediate, "problem_solving": types.Advanced},
		Interests:          map[string]types.InterestLevel{"technology": types.High, "innovation": types.High},
		ExperienceYears:    3,
		EducationLevel:     "bachelor",
		PreferredWorkStyle: "remote",
		SalaryExpectation:  85000,
	})
}

func referenceCareer() types.Career {
	return types.Career{
		ID:                "software_engineer",
		Title:             "Software Engineer",
		RequiredSkills:    map[string]types.SkillLevel{"programming": types.Intermediate, "problem_solving": types.Advanced},
		RelevantInterests: map[string]types.InterestLevel{"technology": types.High, "innovation": types.High},
		MinExperience:     2,
		MinEducation:      "bachelor",
		SalaryRange:       types.SalaryRange{Min: 70000, Max: 120000},
		WorkStyles:        []string{"remote", "hybrid"},
		GrowthPotential:   9,
		JobMarketDemand:   8,
	}
}

func mustProfile(t *testing.T, input types.ProfileInput) *types.UserProfile {
	t.Helper()
	if input.EducationLevel == "" {
		input.EducationLevel = types.DefaultEducationLevel
	}
	if input.PreferredWorkStyle == "" {
		input.PreferredWorkStyle = types.DefaultWorkStyle
	}
	if input.SalaryExpectation == 0 {
		input.SalaryExpectation = types.DefaultSalaryExpectation
	}
	p, err := types.NewUserProfile(input)
	require.NoError(t, err)
	return p
}

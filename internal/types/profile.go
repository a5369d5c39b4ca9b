package types

import (
	"fmt"
	"maps"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Profile defaults applied when a loosely-typed profile omits a field.
const (
	DefaultEducationLevel    = "high_school"
	DefaultWorkStyle         = "hybrid"
	DefaultSalaryExpectation = 50000
)

// ProfileInput is the mutable, wire-level form of a user profile. It is validated and
// frozen into a UserProfile by NewUserProfile.
type ProfileInput struct {
	Skills             map[string]SkillLevel    `json:"skills" mapstructure:"skills" validate:"dive,keys,required,endkeys,min=1,max=4"`
	Interests          map[string]InterestLevel `json:"interests" mapstructure:"interests" validate:"dive,keys,required,endkeys,min=1,max=4"`
	ExperienceYears    int                      `json:"experience_years" mapstructure:"experience_years" validate:"gte=0"`
	EducationLevel     string                   `json:"education_level" mapstructure:"education_level" validate:"required"`
	PreferredWorkStyle string                   `json:"preferred_work_style" mapstructure:"preferred_work_style" validate:"required"`
	SalaryExpectation  int                      `json:"salary_expectation" mapstructure:"salary_expectation" validate:"gt=0"`
	LocationPreference string                   `json:"location_preference,omitempty" mapstructure:"location_preference"`
}

// Validate validates the ProfileInput using the validator.
func (p *ProfileInput) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// DefaultProfileInput returns an input pre-populated with the profile defaults.
func DefaultProfileInput() ProfileInput {
	return ProfileInput{
		EducationLevel:     DefaultEducationLevel,
		PreferredWorkStyle: DefaultWorkStyle,
		SalaryExpectation:  DefaultSalaryExpectation,
	}
}

// DecodeProfileInput converts a loosely-typed map (parsed JSON, YAML, form data) into a
// ProfileInput. Skill and interest levels may be given as names or integers; absent
// fields keep the DefaultProfileInput values.
func DecodeProfileInput(raw map[string]any) (ProfileInput, error) {
	input := DefaultProfileInput()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       levelDecodeHook,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
		Result:           &input,
	})
	if err != nil {
		return input, fmt.Errorf("failed to create profile decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return input, &ProfileError{Message: "failed to decode profile", Cause: err}
	}

	return input, nil
}

var (
	skillLevelType    = reflect.TypeOf(SkillLevel(0))
	interestLevelType = reflect.TypeOf(InterestLevel(0))
)

func levelDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case skillLevelType:
		return ParseSkillLevel(data)
	case interestLevelType:
		return ParseInterestLevel(data)
	default:
		return data, nil
	}
}

// UserProfile is the immutable profile scored against careers. Skill and interest keys
// are normalised with NormalizeName.
type UserProfile struct {
	skills             map[string]SkillLevel
	interests          map[string]InterestLevel
	experienceYears    int
	educationLevel     string
	preferredWorkStyle string
	salaryExpectation  int
	locationPreference string
}

// NewUserProfile validates the input and freezes it into a UserProfile.
func NewUserProfile(input ProfileInput) (*UserProfile, error) {
	if err := input.Validate(); err != nil {
		return nil, &ProfileError{Message: "invalid profile", Cause: err}
	}

	skills, err := normalizeKeys(input.Skills, "skill")
	if err != nil {
		return nil, err
	}
	interests, err := normalizeKeys(input.Interests, "interest")
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		skills:             skills,
		interests:          interests,
		experienceYears:    input.ExperienceYears,
		educationLevel:     NormalizeName(input.EducationLevel),
		preferredWorkStyle: NormalizeName(input.PreferredWorkStyle),
		salaryExpectation:  input.SalaryExpectation,
		locationPreference: input.LocationPreference,
	}, nil
}

// ProfileFromMap is DecodeProfileInput followed by NewUserProfile.
func ProfileFromMap(raw map[string]any) (*UserProfile, error) {
	input, err := DecodeProfileInput(raw)
	if err != nil {
		return nil, err
	}
	return NewUserProfile(input)
}

func normalizeKeys[L ~int](in map[string]L, kind string) (map[string]L, error) {
	out := make(map[string]L, len(in))
	for name, level := range in {
		key := NormalizeName(name)
		if _, dup := out[key]; dup {
			return nil, &ProfileError{Message: fmt.Sprintf("duplicate %s name %q", kind, name)}
		}
		out[key] = level
	}
	return out, nil
}

// Skill returns the user's level for the named skill. A miss returns LowestSkillLevel
// and false; callers that score must treat a miss as "not held".
func (p *UserProfile) Skill(name string) (SkillLevel, bool) {
	level, ok := p.skills[NormalizeName(name)]
	if !ok {
		return LowestSkillLevel, false
	}
	return level, true
}

// Interest returns the user's level for the named interest, DefaultInterestLevel on a miss.
func (p *UserProfile) Interest(name string) (InterestLevel, bool) {
	level, ok := p.interests[NormalizeName(name)]
	if !ok {
		return DefaultInterestLevel, false
	}
	return level, true
}

// Skills returns a copy of the skill map.
func (p *UserProfile) Skills() map[string]SkillLevel { return maps.Clone(p.skills) }

// Interests returns a copy of the interest map.
func (p *UserProfile) Interests() map[string]InterestLevel { return maps.Clone(p.interests) }

// ExperienceYears returns the years of experience.
func (p *UserProfile) ExperienceYears() int { return p.experienceYears }

// EducationLevel returns the normalised education tag.
func (p *UserProfile) EducationLevel() string { return p.educationLevel }

// PreferredWorkStyle returns the normalised work-style tag.
func (p *UserProfile) PreferredWorkStyle() string { return p.preferredWorkStyle }

// SalaryExpectation returns the expected salary.
func (p *UserProfile) SalaryExpectation() int { return p.salaryExpectation }

// LocationPreference returns the optional location preference.
func (p *UserProfile) LocationPreference() string { return p.locationPreference }

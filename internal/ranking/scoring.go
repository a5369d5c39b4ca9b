// Package ranking scores user profiles against careers and ranks the results.
package ranking

import (
	"maps"
	"math"
	"slices"

	"github.com/jonathan/career-advisor/internal/types"
)

// Rule weights. A perfect match on every rule sums to exactly 1.0.
const (
	SkillMatchWeight        = 0.40
	InterestAlignmentWeight = 0.25
	ExperienceWeight        = 0.15
	EducationWeight         = 0.10
	SalaryWeight            = 0.05
	WorkStyleWeight         = 0.03
	MarketDemandWeight      = 0.01
	GrowthPotentialWeight   = 0.01
)

// Rule names, as reported in score breakdowns.
const (
	RuleSkillMatch        = "skill_match"
	RuleInterestAlignment = "interest_alignment"
	RuleExperience        = "experience"
	RuleEducation         = "education"
	RuleSalary            = "salary"
	RuleWorkStyle         = "work_style"
	RuleMarketDemand      = "market_demand"
	RuleGrowthPotential   = "growth_potential"
)

// Scoring constants
const (
	skillBonusPerLevel = 0.1 // per level above the requirement
	interestRatioCap   = 1.5

	experienceBase          = 0.8
	experienceBonusPerYear  = 0.02
	experienceMaxBonus      = 0.2
	experienceShortfallBase = 0.4
	experiencePenaltyPerYr  = 0.1
	experienceMaxPenalty    = 0.6

	educationPartialFactor = 0.7

	salaryBelowFactor     = 0.8
	salaryNearFactor      = 0.6
	salaryFarFactor       = 0.2
	salaryNearAboveMargin = 1.2 // up to 20% above max

	outlookScale = 10.0
)

// Rule is one independently weighted comparison between a profile and a career.
// Score returns the already-weighted contribution, in [0, Weight].
type Rule struct {
	Name   string
	Weight float64
	Score  func(p *types.UserProfile, c *types.Career) float64
}

var rules = []Rule{
	{Name: RuleSkillMatch, Weight: SkillMatchWeight, Score: skillMatchScore},
	{Name: RuleInterestAlignment, Weight: InterestAlignmentWeight, Score: interestAlignmentScore},
	{Name: RuleExperience, Weight: ExperienceWeight, Score: experienceScore},
	{Name: RuleEducation, Weight: EducationWeight, Score: educationScore},
	{Name: RuleSalary, Weight: SalaryWeight, Score: salaryScore},
	{Name: RuleWorkStyle, Weight: WorkStyleWeight, Score: workStyleScore},
	{Name: RuleMarketDemand, Weight: MarketDemandWeight, Score: marketDemandScore},
	{Name: RuleGrowthPotential, Weight: GrowthPotentialWeight, Score: growthPotentialScore},
}

// Rules returns the scoring rules in evaluation order.
func Rules() []Rule {
	return slices.Clone(rules)
}

// Score returns the compatibility of p with c in [0, 1]. A nil profile or career scores 0.
func Score(p *types.UserProfile, c *types.Career) float64 {
	if p == nil || c == nil {
		return 0
	}

	total := 0.0
	for _, r := range rules {
		total += r.Score(p, c)
	}

	// Ensure score is in valid range
	return clamp(total, 0, 1)
}

// RuleBreakdown returns every rule's weighted sub-score, in evaluation order.
func RuleBreakdown(p *types.UserProfile, c *types.Career) []types.RuleScore {
	out := make([]types.RuleScore, 0, len(rules))
	for _, r := range rules {
		score := 0.0
		if p != nil && c != nil {
			score = r.Score(p, c)
		}
		out = append(out, types.RuleScore{Rule: r.Name, Weight: r.Weight, Score: score})
	}
	return out
}

// skillMatchScore counts required skills held at or above the required level, plus a
// bonus for each level above. Absent skills are not held. No requirements scores 0.
func skillMatchScore(p *types.UserProfile, c *types.Career) float64 {
	if len(c.RequiredSkills) == 0 {
		return 0
	}

	matched := 0
	bonus := 0.0
	for _, name := range slices.Sorted(maps.Keys(c.RequiredSkills)) {
		required := c.RequiredSkills[name]
		level, held := p.Skill(name)
		if !held || level < required {
			continue
		}
		matched++
		bonus += math.Max(0, float64(level-required)*skillBonusPerLevel)
	}

	ratio := float64(matched)/float64(len(c.RequiredSkills)) + bonus
	return math.Min(1, ratio) * SkillMatchWeight
}

// interestAlignmentScore averages level/importance (capped) over the career's relevant
// interests. Interests absent from the profile contribute 0.
func interestAlignmentScore(p *types.UserProfile, c *types.Career) float64 {
	if len(c.RelevantInterests) == 0 {
		return 0
	}

	accumulated := 0.0
	for _, name := range slices.Sorted(maps.Keys(c.RelevantInterests)) {
		level, held := p.Interest(name)
		if !held {
			continue
		}
		importance := c.RelevantInterests[name]
		accumulated += math.Min(float64(level)/float64(importance), interestRatioCap)
	}

	return math.Min(1, accumulated/float64(len(c.RelevantInterests))) * InterestAlignmentWeight
}

func experienceScore(p *types.UserProfile, c *types.Career) float64 {
	years, minimum := p.ExperienceYears(), c.MinExperience
	if years >= minimum {
		bonus := math.Min(experienceMaxBonus, float64(years-minimum)*experienceBonusPerYear)
		return math.Min(1, experienceBase+bonus) * ExperienceWeight
	}

	penalty := math.Min(experienceMaxPenalty, float64(minimum-years)*experiencePenaltyPerYr)
	return math.Max(0, experienceShortfallBase-penalty) * ExperienceWeight
}

func educationScore(p *types.UserProfile, c *types.Career) float64 {
	have := EducationRank(p.EducationLevel())
	need := EducationRank(c.MinEducation)
	if have >= need {
		return EducationWeight
	}
	return math.Max(0, float64(have)/float64(need)*educationPartialFactor) * EducationWeight
}

// salaryScore rewards an expectation inside the range, then below it, then slightly
// above it, then far above it.
func salaryScore(p *types.UserProfile, c *types.Career) float64 {
	salary := p.SalaryExpectation()
	r := c.SalaryRange

	switch {
	case r.Contains(salary):
		return SalaryWeight
	case salary < r.Min:
		return salaryBelowFactor * SalaryWeight
	case float64(salary) <= float64(r.Max)*salaryNearAboveMargin:
		return salaryNearFactor * SalaryWeight
	default:
		return salaryFarFactor * SalaryWeight
	}
}

func workStyleScore(p *types.UserProfile, c *types.Career) float64 {
	if c.SupportsWorkStyle(p.PreferredWorkStyle()) {
		return WorkStyleWeight
	}
	return 0
}

func marketDemandScore(_ *types.UserProfile, c *types.Career) float64 {
	return outlook(c.JobMarketDemand) * MarketDemandWeight
}

func growthPotentialScore(_ *types.UserProfile, c *types.Career) float64 {
	return outlook(c.GrowthPotential) * GrowthPotentialWeight
}

// outlook maps a 1-10 rating to [0, 1]; out-of-range ratings are clamped.
func outlook(rating int) float64 {
	return clamp(float64(rating), 0, outlookScale) / outlookScale
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

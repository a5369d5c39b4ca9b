package ranking

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jonathan/career-advisor/internal/types"
)

// Explanation thresholds, as a fraction of the rule's weight.
const (
	strongRatio = 0.8
	weakRatio   = 0.5
)

// Explanation messages
const (
	msgStrongSkills       = "Strong skill alignment"
	msgDevelopSkills      = "May need to develop additional skills"
	msgStrongInterests    = "Excellent interest match"
	msgWeakInterests      = "Interest alignment could be better"
	msgSalaryAboveRange   = "Salary expectations may be above typical range"
	msgExperienceShortage = "Needs %d more years of experience"
)

// Recommend scores p against every career and returns the best topN, highest score
// first. Equal scores are ordered by career id. topN <= 0 or a nil profile yields an
// empty result.
func Recommend(p *types.UserProfile, careers []types.Career, topN int) []types.Recommendation {
	if p == nil || topN <= 0 || len(careers) == 0 {
		return []types.Recommendation{}
	}

	recs := make([]types.Recommendation, 0, len(careers))
	for i := range careers {
		c := &careers[i]
		score := Score(p, c)
		recs = append(recs, types.Recommendation{
			Career:      *c,
			Score:       score,
			Explanation: Explain(p, c, score),
			Breakdown:   RuleBreakdown(p, c),
		})
	}

	// Sort by score (descending), then id
	slices.SortStableFunc(recs, func(a, b types.Recommendation) int {
		if byScore := cmp.Compare(b.Score, a.Score); byScore != 0 {
			return byScore
		}
		return cmp.Compare(a.Career.ID, b.Career.ID)
	})

	return recs[:min(topN, len(recs))]
}

// Explain builds the advisory text for a (profile, career, score) triple.
func Explain(p *types.UserProfile, c *types.Career, score float64) types.Explanation {
	explanation := types.Explanation{
		Overall:        fmt.Sprintf("Overall compatibility: %.1f%%", score*100),
		Strengths:      []string{},
		Considerations: []string{},
	}
	if p == nil || c == nil {
		return explanation
	}

	skillRatio := skillMatchScore(p, c) / SkillMatchWeight
	switch {
	case skillRatio > strongRatio:
		explanation.Strengths = append(explanation.Strengths, msgStrongSkills)
	case skillRatio < weakRatio:
		explanation.Considerations = append(explanation.Considerations, msgDevelopSkills)
	}

	interestRatio := interestAlignmentScore(p, c) / InterestAlignmentWeight
	switch {
	case interestRatio > strongRatio:
		explanation.Strengths = append(explanation.Strengths, msgStrongInterests)
	case interestRatio < weakRatio:
		explanation.Considerations = append(explanation.Considerations, msgWeakInterests)
	}

	if shortfall := c.MinExperience - p.ExperienceYears(); shortfall > 0 {
		explanation.Considerations = append(explanation.Considerations, fmt.Sprintf(msgExperienceShortage, shortfall))
	}

	if p.SalaryExpectation() > c.SalaryRange.Max {
		explanation.Considerations = append(explanation.Considerations, msgSalaryAboveRange)
	}

	return explanation
}

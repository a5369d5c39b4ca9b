package ranking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-advisor/internal/types"
)

func TestRecommendBatch_PreservesOrder(t *testing.T) {
	careers := sampleCareers()
	profiles := []*types.UserProfile{
		referenceProfile(t),
		mustProfile(t, types.ProfileInput{
			Skills:             map[string]types.SkillLevel{"patient_care": types.Expert, "communication": types.Advanced},
			Interests:          map[string]types.InterestLevel{"healthcare": types.VeryHigh},
			ExperienceYears:    4,
			EducationLevel:     "bachelor",
			PreferredWorkStyle: "onsite",
		}),
		nil,
	}

	for _, limit := range []int{0, 1, 4} {
		results, err := RecommendBatch(context.Background(), profiles, careers, 2, limit)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, Recommend(profiles[0], careers, 2), results[0])
		assert.Equal(t, "software_engineer", results[0][0].Career.ID)
		assert.Equal(t, "nurse", results[1][0].Career.ID)
		assert.Empty(t, results[2])
	}
}

func TestRecommendBatch_Empty(t *testing.T) {
	results, err := RecommendBatch(context.Background(), nil, sampleCareers(), 3, 2)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecommendBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := RecommendBatch(ctx, []*types.UserProfile{referenceProfile(t)}, sampleCareers(), 3, 1)

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

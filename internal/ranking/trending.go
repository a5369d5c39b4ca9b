package ranking

import (
	"cmp"
	"slices"

	"github.com/jonathan/career-advisor/internal/types"
)

// Trending returns the n careers with the best market outlook: job market demand
// first, then growth potential, then id. It does not depend on any profile.
func Trending(careers []types.Career, n int) []types.Career {
	if n <= 0 {
		return []types.Career{}
	}

	sorted := slices.Clone(careers)
	slices.SortStableFunc(sorted, func(a, b types.Career) int {
		return cmp.Or(
			cmp.Compare(b.JobMarketDemand, a.JobMarketDemand),
			cmp.Compare(b.GrowthPotential, a.GrowthPotential),
			cmp.Compare(a.ID, b.ID),
		)
	})

	return sorted[:min(n, len(sorted))]
}

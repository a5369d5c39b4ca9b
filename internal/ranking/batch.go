package ranking

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-advisor/internal/types"
)

// RecommendBatch runs Recommend for every profile concurrently, at most limit at a
// time (limit <= 0 means unbounded). Results are returned in profile order. The only
// error is the context's, when it is cancelled before all profiles are scored.
func RecommendBatch(ctx context.Context, profiles []*types.UserProfile, careers []types.Career, topN, limit int) ([][]types.Recommendation, error) {
	results := make([][]types.Recommendation, len(profiles))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, p := range profiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Recommend(p, careers, topN)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

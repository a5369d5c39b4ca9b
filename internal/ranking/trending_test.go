package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-advisor/internal/types"
)

func TestTrending(t *testing.T) {
	careers := []types.Career{
		{ID: "b", JobMarketDemand: 8, GrowthPotential: 6},
		{ID: "a", JobMarketDemand: 8, GrowthPotential: 6},
		{ID: "c", JobMarketDemand: 9, GrowthPotential: 1},
		{ID: "d", JobMarketDemand: 8, GrowthPotential: 9},
		{ID: "e", JobMarketDemand: 2, GrowthPotential: 10},
	}

	ids := func(cs []types.Career) []string {
		out := make([]string, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "top three", n: 3, want: []string{"c", "d", "a"}},
		{name: "all", n: 10, want: []string{"c", "d", "a", "b", "e"}},
		{name: "zero", n: 0, want: []string{}},
		{name: "negative", n: -2, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Trending(careers, tt.n)))
		})
	}

	assert.Equal(t, "b", careers[0].ID, "input order is preserved")
}

package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-advisor/internal/catalog"
)

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "not a url ://")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}

func TestRowArgs_FollowsColumnOrder(t *testing.T) {
	row := map[string]string{
		catalog.ColumnID:              "nurse",
		catalog.ColumnTitle:           "Nurse",
		catalog.ColumnJobMarketDemand: "9",
	}

	args := rowArgs(row)

	require.Len(t, args, len(careerColumns))
	assert.Equal(t, "nurse", args[0])
	assert.Equal(t, "Nurse", args[1])
	assert.Equal(t, "", args[2], "missing cells are passed as blank")
	assert.Equal(t, "9", args[len(args)-1])
}

func TestCareerColumns_MatchRequiredColumns(t *testing.T) {
	names := make([]string, len(careerColumns))
	for i, c := range careerColumns {
		names[i] = c.name
	}
	assert.ElementsMatch(t, catalog.RequiredColumns, names)
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkillLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    SkillLevel
		wantErr bool
	}{
		{name: "lower case name", input: "intermediate", want: Intermediate},
		{name: "upper case name", input: "EXPERT", want: Expert},
		{name: "int", input: 3, want: Advanced},
		{name: "json number", input: float64(1), want: Beginner},
		{name: "numeric string", input: "2", want: Intermediate},
		{name: "fractional", input: 2.5, wantErr: true},
		{name: "out of range", input: 5, wantErr: true},
		{name: "zero", input: 0, wantErr: true},
		{name: "unknown name", input: "guru", wantErr: true},
		{name: "unsupported type", input: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSkillLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInterestLevel(t *testing.T) {
	got, err := ParseInterestLevel("very high")
	require.NoError(t, err)
	assert.Equal(t, VeryHigh, got)

	got, err = ParseInterestLevel("Very_High")
	require.NoError(t, err)
	assert.Equal(t, VeryHigh, got)

	got, err = ParseInterestLevel("VeryHigh")
	require.NoError(t, err)
	assert.Equal(t, VeryHigh, got)

	got, err = ParseInterestLevel(float64(3))
	require.NoError(t, err)
	assert.Equal(t, High, got)

	_, err = ParseInterestLevel("medium")
	assert.Error(t, err)
}

func TestLevelOrdinals(t *testing.T) {
	assert.Equal(t, 1, int(Beginner))
	assert.Equal(t, 4, int(Expert))
	assert.Equal(t, 1, int(Low))
	assert.Equal(t, 4, int(VeryHigh))
	assert.Equal(t, Beginner, LowestSkillLevel)
	assert.Equal(t, Moderate, DefaultInterestLevel)
	assert.Equal(t, "ADVANCED", Advanced.String())
	assert.Equal(t, "VERY_HIGH", VeryHigh.String())
	assert.False(t, SkillLevel(9).Valid())
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "problem_solving", NormalizeName("Problem Solving"))
	assert.Equal(t, "problem_solving", NormalizeName("  problem-solving "))
	assert.Equal(t, "remote", NormalizeName("REMOTE"))
	assert.Equal(t, "", NormalizeName("   "))
}

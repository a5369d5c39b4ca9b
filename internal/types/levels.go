// Package types provides type definitions for structured data used throughout the career advisor.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SkillLevel is the ordinal proficiency scale for a skill.
type SkillLevel int

// Skill levels, compared by integer value.
const (
	Beginner SkillLevel = iota + 1
	Intermediate
	Advanced
	Expert
)

// LowestSkillLevel is returned whenever a skill lookup misses.
const LowestSkillLevel = Beginner

var skillLevelNames = map[string]SkillLevel{
	"beginner":     Beginner,
	"intermediate": Intermediate,
	"advanced":     Advanced,
	"expert":       Expert,
}

// String returns the upper-case level name.
func (l SkillLevel) String() string {
	switch l {
	case Beginner:
		return "BEGINNER"
	case Intermediate:
		return "INTERMEDIATE"
	case Advanced:
		return "ADVANCED"
	case Expert:
		return "EXPERT"
	default:
		return fmt.Sprintf("SkillLevel(%d)", int(l))
	}
}

// Valid reports whether l is one of the four defined levels.
func (l SkillLevel) Valid() bool {
	return l >= Beginner && l <= Expert
}

// InterestLevel is the ordinal scale for how strongly an interest is held (or how important it is).
type InterestLevel int

// Interest levels, compared by integer value.
const (
	Low InterestLevel = iota + 1
	Moderate
	High
	VeryHigh
)

// DefaultInterestLevel is returned whenever an interest lookup misses.
const DefaultInterestLevel = Moderate

var interestLevelNames = map[string]InterestLevel{
	"low":       Low,
	"moderate":  Moderate,
	"high":      High,
	"very_high": VeryHigh,
	"veryhigh":  VeryHigh,
}

// String returns the upper-case level name.
func (l InterestLevel) String() string {
	switch l {
	case Low:
		return "LOW"
	case Moderate:
		return "MODERATE"
	case High:
		return "HIGH"
	case VeryHigh:
		return "VERY_HIGH"
	default:
		return fmt.Sprintf("InterestLevel(%d)", int(l))
	}
}

// Valid reports whether l is one of the four defined levels.
func (l InterestLevel) Valid() bool {
	return l >= Low && l <= VeryHigh
}

// ParseSkillLevel accepts a level name ("intermediate", "EXPERT"), an integer,
// an integral float (as produced by encoding/json) or a numeric string.
func ParseSkillLevel(v any) (SkillLevel, error) {
	n, err := parseOrdinal(v, func(name string) (int, bool) {
		l, ok := skillLevelNames[name]
		return int(l), ok
	})
	if err != nil {
		return 0, fmt.Errorf("invalid skill level %v: %w", v, err)
	}
	level := SkillLevel(n)
	if !level.Valid() {
		return 0, fmt.Errorf("invalid skill level %v: out of range 1-4", v)
	}
	return level, nil
}

// ParseInterestLevel is the InterestLevel counterpart of ParseSkillLevel.
func ParseInterestLevel(v any) (InterestLevel, error) {
	n, err := parseOrdinal(v, func(name string) (int, bool) {
		l, ok := interestLevelNames[name]
		return int(l), ok
	})
	if err != nil {
		return 0, fmt.Errorf("invalid interest level %v: %w", v, err)
	}
	level := InterestLevel(n)
	if !level.Valid() {
		return 0, fmt.Errorf("invalid interest level %v: out of range 1-4", v)
	}
	return level, nil
}

func parseOrdinal(v any, byName func(string) (int, bool)) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int32:
		return int(val), nil
	case int64:
		return int(val), nil
	case SkillLevel:
		return int(val), nil
	case InterestLevel:
		return int(val), nil
	case float64:
		if val != math.Trunc(val) {
			return 0, fmt.Errorf("not an integer")
		}
		return int(val), nil
	case string:
		key := NormalizeName(val)
		if n, ok := byName(key); ok {
			return n, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("unknown level name")
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

// NormalizeName canonicalises skill, interest and tag names so that lookups are
// case-insensitive: "Problem Solving" and "problem_solving" map to the same key.
func NormalizeName(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(name)), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	})
	return strings.Join(fields, "_")
}

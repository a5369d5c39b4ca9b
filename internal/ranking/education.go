package ranking

import "github.com/jonathan/career-advisor/internal/types"

// educationRank maps education tags to their position in the hierarchy.
var educationRank = map[string]int{
	"high_school": 1,
	"associate":   2,
	"bachelor":    3,
	"master":      4,
	"phd":         5,
}

// lowestEducationRank is used for unknown or empty tags.
const lowestEducationRank = 1

// EducationRank returns the hierarchy rank of tag, case-insensitively. Unknown tags rank lowest.
func EducationRank(tag string) int {
	if rank, ok := educationRank[types.NormalizeName(tag)]; ok {
		return rank
	}
	return lowestEducationRank
}

package types

// Explanation is the advisory text attached to a recommendation. It is not used in scoring.
type Explanation struct {
	Overall        string   `json:"overall"`
	Strengths      []string `json:"strengths"`
	Considerations []string `json:"considerations"`
}

// RuleScore is one rule's weighted contribution to a career score.
type RuleScore struct {
	Rule   string  `json:"rule"`
	Weight float64 `json:"weight"`
	Score  float64 `json:"score"`
}

// Recommendation is one ranked (career, score, explanation) result.
type Recommendation struct {
	Career      Career      `json:"career"`
	Score       float64     `json:"score"`
	Explanation Explanation `json:"explanation"`
	Breakdown   []RuleScore `json:"breakdown,omitempty"`
}

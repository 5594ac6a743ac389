package models

// Criterion names one of the five quality dimensions the Reviewer scores.
type Criterion string

const (
	CriterionClarity       Criterion = "clarity"
	CriterionInsight       Criterion = "insight"
	CriterionStructure     Criterion = "structure"
	CriterionVisual        Criterion = "visual"
	CriterionActionability Criterion = "actionability"
)

// HintPriority ranks an improvement hint.
type HintPriority string

const (
	HintPriorityHigh   HintPriority = "high"
	HintPriorityMedium HintPriority = "medium"
)

// ImprovementHint is one targeted suggestion emitted by the Reviewer for a
// criterion that scored below threshold.
type ImprovementHint struct {
	Criterion  Criterion    `json:"criterion"`
	Priority   HintPriority `json:"priority"`
	Suggestion string       `json:"suggestion"`
}

// QualityScore is the Reviewer's verdict over a finalized deck. Sub-scores
// are in [0,1]; Total is the weighted sum (clarity .20, insight .25,
// structure .20, visual .15, actionability .20).
type QualityScore struct {
	Clarity       float64           `json:"clarity"`
	Insight       float64           `json:"insight"`
	Structure     float64           `json:"structure"`
	Visual        float64           `json:"visual"`
	Actionability float64           `json:"actionability"`
	Total         float64           `json:"total"`
	Passed        bool              `json:"passed"`
	Hints         []ImprovementHint `json:"hints,omitempty"`
}

// SubScore returns the sub-score for the given criterion.
func (q *QualityScore) SubScore(c Criterion) float64 {
	switch c {
	case CriterionClarity:
		return q.Clarity
	case CriterionInsight:
		return q.Insight
	case CriterionStructure:
		return q.Structure
	case CriterionVisual:
		return q.Visual
	case CriterionActionability:
		return q.Actionability
	default:
		return 0
	}
}

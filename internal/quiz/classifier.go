package quiz

// classifyPriority is the designed tie-break order: niche categories first so
// that a specialist profile beats the broad buckets when totals tie.
var classifyPriority = []Category{
	CategoryDevOps, CategoryMobile, CategoryGame, CategoryAIML,
	CategoryCode, CategoryData, CategoryDesign, CategorySecurity,
}

// BlendRule resolves a near-tie between two categories into a third,
// combined specialization. Rules are consulted only when no category holds a
// positive maximum, which keeps the heuristic out of the common path.
type BlendRule struct {
	A, B     Category
	MaxDelta int
	Result   Category
}

// DefaultBlendRules mirrors the historically observed policy. It is data,
// not code, so deployments can audit or disable individual rules.
var DefaultBlendRules = []BlendRule{
	{A: CategoryCode, B: CategoryData, MaxDelta: 3, Result: CategoryAIML},
	{A: CategoryCode, B: CategoryDesign, MaxDelta: 3, Result: CategoryGame},
	{A: CategoryCode, B: CategorySecurity, MaxDelta: 3, Result: CategoryDevOps},
	{A: CategoryDesign, B: CategoryData, MaxDelta: 3, Result: CategoryDesign},
}

// Classifier selects the winning category from raw totals. It is stateless
// and total over any score map shape.
type Classifier struct {
	Default Category    // returned when every score is zero or negative
	Rules   []BlendRule // near-tie fallback, may be nil
}

// NewClassifier builds a classifier with the default category and blend
// table. An invalid default falls back to ai_ml, the documented all-zero
// outcome of the original policy.
func NewClassifier(def Category) Classifier {
	if !def.Valid() {
		def = CategoryAIML
	}
	return Classifier{Default: def, Rules: DefaultBlendRules}
}

// Classify picks the winner:
//  1. all-zero scores return the configured default;
//  2. otherwise the first category in priority order whose score equals the
//     maximum wins;
//  3. blend rules cover the residual case of a non-positive maximum with
//     mixed negative inputs, which cannot arise from well-formed catalogs
//     but must still resolve deterministically.
func (cl Classifier) Classify(scores map[Category]int) Category {
	max := 0
	allZero := true
	for _, c := range Categories {
		if scores[c] != 0 {
			allZero = false
		}
		if scores[c] > max {
			max = scores[c]
		}
	}
	if allZero {
		return cl.Default
	}
	if max > 0 {
		for _, c := range classifyPriority {
			if scores[c] == max {
				return c
			}
		}
	}
	for _, r := range cl.Rules {
		if abs(scores[r.A]-scores[r.B]) <= r.MaxDelta {
			return r.Result
		}
	}
	return cl.Default
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

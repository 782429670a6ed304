package quiz

import "fmt"

// Normalizer converts raw category totals into integer percentages in
// [0,100]. Implementations must be total: an all-zero input yields all-zero
// output, never a division error.
type Normalizer interface {
	Name() string
	Percentages(scores map[Category]int) map[Category]int
}

// NewNormalizer selects a strategy by its configured name.
func NewNormalizer(name string) (Normalizer, error) {
	switch name {
	case "", "sum":
		return sumRelative{}, nil
	case "max":
		return maxRelative{}, nil
	default:
		return nil, fmt.Errorf("unknown normalizer %q (want sum or max)", name)
	}
}

// sumRelative computes floor(score*100/total). The floor (not round) is a
// deliberate policy choice; see the max strategy for the rounding variant.
type sumRelative struct{}

func (sumRelative) Name() string { return "sum" }

func (sumRelative) Percentages(scores map[Category]int) map[Category]int {
	out := make(map[Category]int, len(Categories))
	total := 0
	for _, c := range Categories {
		total += scores[c]
	}
	if total <= 0 {
		for _, c := range Categories {
			out[c] = 0
		}
		return out
	}
	for _, c := range Categories {
		out[c] = clampPct(scores[c] * 100 / total)
	}
	return out
}

// maxRelative computes round(score*100/max) clamped to [0,100], so the
// leading category always reads 100%.
type maxRelative struct{}

func (maxRelative) Name() string { return "max" }

func (maxRelative) Percentages(scores map[Category]int) map[Category]int {
	out := make(map[Category]int, len(Categories))
	max := 0
	for _, c := range Categories {
		if scores[c] > max {
			max = scores[c]
		}
	}
	if max <= 0 {
		for _, c := range Categories {
			out[c] = 0
		}
		return out
	}
	for _, c := range Categories {
		v := scores[c]
		if v < 0 {
			v = 0
		}
		out[c] = clampPct((v*100 + max/2) / max)
	}
	return out
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

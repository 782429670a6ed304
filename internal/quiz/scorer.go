package quiz

// Score folds recorded answers into per-category totals. Every category of
// the closed set is present in the output, zero when nothing contributed.
//
// An answer whose stored value matches no option of its question is skipped:
// answers may outlive a catalog edit, and a stale value must not poison the
// rest of the session.
func Score(answers map[int]int, catalog *Catalog) map[Category]int {
	scores := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		scores[c] = 0
	}
	if catalog == nil {
		return scores
	}
	for questionID, value := range answers {
		q, ok := catalog.ByID(questionID)
		if !ok {
			continue
		}
		opt, ok := q.OptionByValue(value)
		if !ok {
			continue
		}
		scores[opt.Category] += opt.Value
	}
	return scores
}

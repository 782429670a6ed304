package quiz

import "testing"

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := NewCatalog(SeedQuestions())
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return cat
}

func TestScoreAccumulatesByCategory(t *testing.T) {
	cat := testCatalog(t)
	// q1: value 3 -> code, q3: value 4 -> code, q5: value 4 -> data
	answers := map[int]int{1: 3, 3: 4, 5: 4}
	scores := Score(answers, cat)

	if got := scores[CategoryCode]; got != 7 {
		t.Errorf("code = %d, want 7", got)
	}
	if got := scores[CategoryData]; got != 4 {
		t.Errorf("data = %d, want 4", got)
	}
	for _, c := range []Category{CategoryDesign, CategorySecurity, CategoryDevOps, CategoryMobile, CategoryGame, CategoryAIML} {
		if scores[c] != 0 {
			t.Errorf("%s = %d, want 0", c, scores[c])
		}
	}
}

func TestScoreAllCategoriesPresent(t *testing.T) {
	scores := Score(nil, testCatalog(t))
	if len(scores) != len(Categories) {
		t.Fatalf("got %d categories, want %d", len(scores), len(Categories))
	}
	for _, c := range Categories {
		if v, ok := scores[c]; !ok || v != 0 {
			t.Errorf("%s = %d (present=%v), want 0", c, v, ok)
		}
	}
}

func TestScoreSkipsUnresolvableAnswers(t *testing.T) {
	cat := testCatalog(t)
	answers := map[int]int{
		1:   3,  // valid
		1000: 2, // unknown question
		2:   99, // value matching no option
	}
	scores := Score(answers, cat)
	total := 0
	for _, v := range scores {
		total += v
	}
	if total != 3 {
		t.Errorf("total = %d, want 3 (stale answers must contribute nothing)", total)
	}
}

func TestScoreNilCatalog(t *testing.T) {
	scores := Score(map[int]int{1: 3}, nil)
	for c, v := range scores {
		if v != 0 {
			t.Errorf("%s = %d, want 0", c, v)
		}
	}
}

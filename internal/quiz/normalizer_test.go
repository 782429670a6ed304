package quiz

import "testing"

func TestNewNormalizer(t *testing.T) {
	for _, name := range []string{"", "sum", "max"} {
		if _, err := NewNormalizer(name); err != nil {
			t.Errorf("NewNormalizer(%q): %v", name, err)
		}
	}
	if _, err := NewNormalizer("median"); err == nil {
		t.Error("NewNormalizer(median): expected error")
	}
}

func TestSumRelativeSingleCategory(t *testing.T) {
	n, _ := NewNormalizer("sum")
	scores := map[Category]int{CategoryCode: 12}
	pct := n.Percentages(scores)
	if pct[CategoryCode] != 100 {
		t.Errorf("code = %d%%, want 100", pct[CategoryCode])
	}
	for _, c := range Categories {
		if c != CategoryCode && pct[c] != 0 {
			t.Errorf("%s = %d%%, want 0", c, pct[c])
		}
	}
}

func TestSumRelativeFloors(t *testing.T) {
	n, _ := NewNormalizer("sum")
	// 1/3 -> 33, 2/3 -> 66: floor, never round
	pct := n.Percentages(map[Category]int{CategoryCode: 1, CategoryData: 2})
	if pct[CategoryCode] != 33 {
		t.Errorf("code = %d%%, want 33", pct[CategoryCode])
	}
	if pct[CategoryData] != 66 {
		t.Errorf("data = %d%%, want 66", pct[CategoryData])
	}
}

func TestMaxRelativeRoundsAndClamps(t *testing.T) {
	n, _ := NewNormalizer("max")
	pct := n.Percentages(map[Category]int{CategoryCode: 9, CategoryData: 3, CategoryGame: 2})
	if pct[CategoryCode] != 100 {
		t.Errorf("code = %d%%, want 100", pct[CategoryCode])
	}
	if pct[CategoryData] != 33 { // 300/9 = 33.33 -> 33
		t.Errorf("data = %d%%, want 33", pct[CategoryData])
	}
	if pct[CategoryGame] != 22 { // 200/9 = 22.2 -> 22
		t.Errorf("game = %d%%, want 22", pct[CategoryGame])
	}
}

func TestNormalizersAllZero(t *testing.T) {
	for _, name := range []string{"sum", "max"} {
		n, _ := NewNormalizer(name)
		pct := n.Percentages(map[Category]int{})
		for _, c := range Categories {
			if pct[c] != 0 {
				t.Errorf("%s: %s = %d%%, want 0", name, c, pct[c])
			}
		}
	}
}

func TestNormalizersBoundedAndOrderPreserving(t *testing.T) {
	inputs := []map[Category]int{
		{CategoryCode: 12},
		{CategoryCode: 9, CategoryDesign: 9, CategoryData: 4},
		{CategoryDevOps: 1, CategoryMobile: 1, CategoryGame: 1, CategoryAIML: 1},
		{CategoryCode: 400, CategoryData: 1},
	}
	for _, name := range []string{"sum", "max"} {
		n, _ := NewNormalizer(name)
		for _, scores := range inputs {
			pct := n.Percentages(scores)
			maxScore, maxAt := 0, Category("")
			for _, c := range Categories {
				if pct[c] < 0 || pct[c] > 100 {
					t.Fatalf("%s: %s = %d%%, out of [0,100]", name, c, pct[c])
				}
				if scores[c] > maxScore {
					maxScore, maxAt = scores[c], c
				}
			}
			// the raw leader must hold a (tied-)highest percentage
			for _, c := range Categories {
				if pct[c] > pct[maxAt] {
					t.Errorf("%s: pct[%s]=%d exceeds leader pct[%s]=%d", name, c, pct[c], maxAt, pct[maxAt])
				}
			}
		}
	}
}

package quiz

import "testing"

func TestClassifySingleLeader(t *testing.T) {
	cl := NewClassifier(CategoryAIML)
	got := cl.Classify(map[Category]int{CategoryCode: 12})
	if got != CategoryCode {
		t.Errorf("winner = %s, want code", got)
	}
}

func TestClassifyTieUsesPriorityOrder(t *testing.T) {
	cl := NewClassifier(CategoryAIML)
	cases := []struct {
		name   string
		scores map[Category]int
		want   Category
	}{
		// code and design tie: neither is in the niche group, code precedes design
		{"code_design", map[Category]int{CategoryCode: 9, CategoryDesign: 9, CategoryData: 4}, CategoryCode},
		// devops outranks every other category at equal score
		{"devops_first", map[Category]int{CategoryDevOps: 5, CategoryCode: 5, CategorySecurity: 5}, CategoryDevOps},
		{"mobile_over_code", map[Category]int{CategoryMobile: 7, CategoryCode: 7}, CategoryMobile},
		{"game_over_ai", map[Category]int{CategoryGame: 6, CategoryAIML: 6}, CategoryGame},
		{"design_over_security", map[Category]int{CategoryDesign: 3, CategorySecurity: 3}, CategoryDesign},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cl.Classify(tc.scores); got != tc.want {
				t.Errorf("winner = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestClassifyAllZeroReturnsDefault(t *testing.T) {
	cl := NewClassifier(CategoryAIML)
	zero := map[Category]int{}
	// repeated calls must agree: the default is policy, not map iteration luck
	for i := 0; i < 50; i++ {
		if got := cl.Classify(zero); got != CategoryAIML {
			t.Fatalf("call %d: winner = %s, want ai_ml", i, got)
		}
	}
}

func TestClassifyConfiguredDefault(t *testing.T) {
	cl := NewClassifier(CategoryCode)
	if got := cl.Classify(nil); got != CategoryCode {
		t.Errorf("winner = %s, want code", got)
	}
	// invalid default falls back to ai_ml
	cl = NewClassifier(Category("quantum"))
	if got := cl.Classify(nil); got != CategoryAIML {
		t.Errorf("winner = %s, want ai_ml", got)
	}
}

// The blend table is a legacy special case: it only fires when no category
// holds a positive maximum, i.e. on degenerate negative inputs that a valid
// catalog cannot produce. It must still resolve deterministically.
func TestClassifyBlendRulesOnDegenerateInput(t *testing.T) {
	cl := NewClassifier(CategoryAIML)
	cl.Default = CategorySecurity // make the default distinguishable from rule output

	scores := map[Category]int{CategoryCode: -2, CategoryData: -4}
	// |code-data| = 2 <= 3 -> ai_ml per the first rule
	if got := cl.Classify(scores); got != CategoryAIML {
		t.Errorf("winner = %s, want ai_ml via blend rule", got)
	}

	cl.Rules = nil
	if got := cl.Classify(scores); got != CategorySecurity {
		t.Errorf("winner = %s, want default with rules disabled", got)
	}
}

func TestClassifyIsStable(t *testing.T) {
	cl := NewClassifier(CategoryAIML)
	scores := map[Category]int{
		CategoryCode: 9, CategoryData: 9, CategoryDesign: 9, CategorySecurity: 9,
		CategoryDevOps: 9, CategoryMobile: 9, CategoryGame: 9, CategoryAIML: 9,
	}
	first := cl.Classify(scores)
	if first != CategoryDevOps {
		t.Fatalf("winner = %s, want devops (head of priority order)", first)
	}
	for i := 0; i < 50; i++ {
		if got := cl.Classify(scores); got != first {
			t.Fatalf("unstable winner: %s then %s", first, got)
		}
	}
}

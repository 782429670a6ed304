package report

import (
	"strings"
	"testing"

	"github.com/DanyaArt/itbot/internal/institution"
	"github.com/DanyaArt/itbot/internal/quiz"
)

func TestDisplayPercentagesKeepsRawValues(t *testing.T) {
	pct := map[quiz.Category]int{
		quiz.CategoryCode: 50, quiz.CategoryData: 30, quiz.CategoryDevOps: 20,
	}
	out := DisplayPercentages(pct)
	if out[quiz.CategoryCode] != 50 || out[quiz.CategoryDevOps] != 20 {
		t.Errorf("raw values changed: %v", out)
	}
}

func TestDisplayPercentagesDerivesZeroNiches(t *testing.T) {
	pct := map[quiz.Category]int{
		quiz.CategoryCode: 60, quiz.CategoryData: 20, quiz.CategoryDesign: 10, quiz.CategorySecurity: 10,
	}
	out := DisplayPercentages(pct)
	if got := out[quiz.CategoryDevOps]; got != 45 { // 0.7*60 + 0.3*10
		t.Errorf("devops = %d, want 45", got)
	}
	if got := out[quiz.CategoryMobile]; got != 40 { // 0.6*60 + 0.4*10
		t.Errorf("mobile = %d, want 40", got)
	}
	if got := out[quiz.CategoryGame]; got != 25 { // 0.7*10 + 0.3*60
		t.Errorf("game = %d, want 25", got)
	}
	if got := out[quiz.CategoryAIML]; got != 28 { // 0.8*20 + 0.2*60
		t.Errorf("ai_ml = %d, want 28", got)
	}
}

func TestSummaryContainsWinnerAndTop(t *testing.T) {
	specs := institution.SeedSpecializations()
	res := &quiz.Result{
		Scores:      map[quiz.Category]int{quiz.CategoryCode: 12},
		Percentages: map[quiz.Category]int{quiz.CategoryCode: 100},
		Winner:      quiz.CategoryCode,
	}
	top := []institution.Institution{
		{Name: "МГУ", City: "Москва", ScoreMin: 300, ScoreMax: 320},
	}
	text := Summary(res, specs[0], specs, top)
	for _, want := range []string{"Программная инженерия", "100%", "МГУ", "300-320"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestSummaryGracefulWithoutInstitutions(t *testing.T) {
	specs := institution.SeedSpecializations()
	res := &quiz.Result{
		Scores:      map[quiz.Category]int{},
		Percentages: map[quiz.Category]int{},
		Winner:      quiz.CategoryAIML,
	}
	text := Summary(res, specs[7], specs, nil)
	if !strings.Contains(text, "пока не добавлены") {
		t.Errorf("expected a not-found note, got:\n%s", text)
	}
}

func TestDetailedListsWeakDirections(t *testing.T) {
	specs := institution.SeedSpecializations()
	res := &quiz.Result{
		Scores:      map[quiz.Category]int{quiz.CategoryCode: 10},
		Percentages: map[quiz.Category]int{quiz.CategoryCode: 100},
		Winner:      quiz.CategoryCode,
	}
	text := Detailed(res, specs[0], specs)
	if !strings.Contains(text, "Data Science") {
		t.Errorf("zero-score directions must be listed:\n%s", text)
	}
}

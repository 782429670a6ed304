package institution

import (
	"testing"
)

func dataset() []Institution {
	// category "data" is specialization 2 in the seed configuration
	return []Institution{
		{Name: "МФТИ", City: "Москва", ScoreMin: 290, ScoreMax: 320, SpecializationID: 2},
		{Name: "НИУ ВШЭ", City: "Москва", ScoreMin: 280, ScoreMax: 310, SpecializationID: 2},
		{Name: "ИТМО", City: "Санкт-Петербург", ScoreMin: 285, ScoreMax: 320, SpecializationID: 2},
		{Name: "МГУ", City: "Москва", ScoreMin: 300, ScoreMax: 320, SpecializationID: 2},
		{Name: "СПбГУ", City: "Санкт-Петербург", ScoreMin: 260, ScoreMax: 300, SpecializationID: 2},
		{Name: "КФУ", City: "Казань", ScoreMin: 230, ScoreMax: 270, SpecializationID: 2},
		{Name: "МИРЭА", City: "Москва", ScoreMin: 220, ScoreMax: 260, SpecializationID: 1},
	}
}

func TestMatchFiltersAndRanks(t *testing.T) {
	ranked := Match(2, dataset())
	if len(ranked) != 6 {
		t.Fatalf("got %d rows, want 6 (one row belongs to another specialization)", len(ranked))
	}
	// three share score_max=320 and must appear consecutively, name-ascending
	wantHead := []string{"ИТМО", "МГУ", "МФТИ"}
	for i, name := range wantHead {
		if ranked[i].Name != name {
			t.Errorf("rank %d = %s, want %s", i, ranked[i].Name, name)
		}
	}
	// then strictly descending ceilings
	for i := 1; i < len(ranked); i++ {
		if ranked[i].ScoreMax > ranked[i-1].ScoreMax {
			t.Errorf("rank %d ceiling %d above rank %d ceiling %d",
				i, ranked[i].ScoreMax, i-1, ranked[i-1].ScoreMax)
		}
	}
}

func TestMatchOrderIndependentOfInput(t *testing.T) {
	ds := dataset()
	// reverse the input; the ranking must not change
	rev := make([]Institution, len(ds))
	for i, in := range ds {
		rev[len(ds)-1-i] = in
	}
	a, b := Match(2, ds), Match(2, rev)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("rank %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestMatchEmptyResultIsValid(t *testing.T) {
	if got := Match(99, dataset()); len(got) != 0 {
		t.Errorf("got %d rows for unknown specialization, want 0", len(got))
	}
}

func TestTopTruncates(t *testing.T) {
	ranked := Match(2, dataset())
	top := Top(ranked, TopN)
	if len(top) != 5 {
		t.Fatalf("got %d, want 5", len(top))
	}
	if top[0].Name != "ИТМО" {
		t.Errorf("top[0] = %s", top[0].Name)
	}
	if got := Top(ranked[:2], TopN); len(got) != 2 {
		t.Errorf("short list truncated to %d", len(got))
	}
}

func TestGroupByCity(t *testing.T) {
	groups := GroupByCity(Match(2, dataset()))
	if len(groups) != 3 {
		t.Fatalf("got %d cities, want 3", len(groups))
	}
	if groups[0].City != "Казань" || groups[1].City != "Москва" || groups[2].City != "Санкт-Петербург" {
		t.Errorf("city order: %s, %s, %s", groups[0].City, groups[1].City, groups[2].City)
	}
	// rank order survives inside a bucket
	msk := groups[1].Institutions
	if msk[0].Name != "МГУ" || msk[1].Name != "МФТИ" {
		t.Errorf("Москва bucket head: %s, %s", msk[0].Name, msk[1].Name)
	}
}

func TestUniqueCollapsesPrograms(t *testing.T) {
	rows := []Institution{
		{Name: "МГУ", City: "Москва", SpecializationID: 1},
		{Name: "МГУ", City: "Москва", SpecializationID: 2, URL: "https://msu.ru"},
		{Name: "МГУ", City: "Саров", SpecializationID: 1},
	}
	uniq := Unique(rows)
	if len(uniq) != 2 {
		t.Fatalf("got %d, want 2", len(uniq))
	}
	if uniq[0].City != "Москва" || uniq[0].URL != "https://msu.ru" {
		t.Errorf("merged entry = %+v (URL must survive the merge)", uniq[0])
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		in   Institution
		ok   bool
	}{
		{"valid", Institution{Name: "МГУ", City: "Москва", ScoreMin: 200, ScoreMax: 300}, true},
		{"inverted_range", Institution{Name: "МГУ", City: "Москва", ScoreMin: 300, ScoreMax: 200}, false},
		{"above_domain", Institution{Name: "МГУ", City: "Москва", ScoreMin: 100, ScoreMax: 500}, false},
		{"negative", Institution{Name: "МГУ", City: "Москва", ScoreMin: -1, ScoreMax: 100}, false},
		{"no_name", Institution{City: "Москва", ScoreMax: 100}, false},
		{"no_city", Institution{Name: "МГУ", ScoreMax: 100}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

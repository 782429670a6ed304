package institution

import (
	"sort"
	"testing"
)

func TestImportRoundTrip(t *testing.T) {
	specs := SeedSpecializations()
	names := map[int]string{}
	for _, sp := range specs {
		names[sp.ID] = sp.Name
	}

	original := []Institution{
		{Name: "МГУ", City: "Москва", ScoreMin: 300, ScoreMax: 320, URL: "https://msu.ru", SpecializationID: 1},
		{Name: "ИТМО", City: "Санкт-Петербург", ScoreMin: 285, ScoreMax: 320, SpecializationID: 2},
		{Name: "КФУ", City: "Казань", ScoreMin: 230, ScoreMax: 270, SpecializationID: 8},
	}

	rows := make([]ExportRow, 0, len(original))
	for _, i := range original {
		rows = append(rows, ExportRow{
			Name: i.Name, City: i.City,
			ScoreMin: i.ScoreMin, ScoreMax: i.ScoreMax,
			URL: i.URL, Specialization: names[i.SpecializationID],
		})
	}

	back, unresolved := Import(rows, specs)
	if len(unresolved) != 0 {
		t.Fatalf("unresolved rows: %v", unresolved)
	}
	if len(back) != len(original) {
		t.Fatalf("got %d rows, want %d", len(back), len(original))
	}

	sort.Slice(back, func(a, b int) bool { return back[a].Name < back[b].Name })
	sort.Slice(original, func(a, b int) bool { return original[a].Name < original[b].Name })
	for i := range original {
		if back[i] != original[i] {
			t.Errorf("row %d: %+v != %+v", i, back[i], original[i])
		}
	}
}

func TestImportKeepsUnresolvedRows(t *testing.T) {
	rows := []ExportRow{
		{Name: "МГУ", City: "Москва", Specialization: "Программная инженерия"},
		{Name: "Политех", City: "Томск", Specialization: "Квантовая инженерия"},
	}
	ok, unresolved := Import(rows, SeedSpecializations())
	if len(ok) != 1 || len(unresolved) != 1 {
		t.Fatalf("ok=%d unresolved=%d, want 1/1", len(ok), len(unresolved))
	}
	if unresolved[0].Name != "Политех" {
		t.Errorf("unresolved = %+v (rows must not be lost silently)", unresolved[0])
	}
}

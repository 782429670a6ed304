package institution

import "sort"

// TopN is how many institutions the final report shows.
const TopN = 5

// Match filters institutions to one specialization and orders them by
// descending score_max; equal ceilings are broken by ascending name so the
// ranking is stable regardless of input order. An empty result is valid.
func Match(specializationID int, all []Institution) []Institution {
	var out []Institution
	for _, i := range all {
		if i.SpecializationID == specializationID {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].ScoreMax != out[b].ScoreMax {
			return out[a].ScoreMax > out[b].ScoreMax
		}
		return out[a].Name < out[b].Name
	})
	return out
}

// Top truncates a ranked list to the report size.
func Top(ranked []Institution, n int) []Institution {
	if len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}

// CityGroup is one locality bucket of the "show all" view.
type CityGroup struct {
	City         string
	Institutions []Institution
}

// GroupByCity buckets a ranked list by city, cities ordered alphabetically,
// institutions keeping their rank order inside each bucket.
func GroupByCity(ranked []Institution) []CityGroup {
	byCity := map[string][]Institution{}
	for _, i := range ranked {
		byCity[i.City] = append(byCity[i.City], i)
	}
	cities := make([]string, 0, len(byCity))
	for c := range byCity {
		cities = append(cities, c)
	}
	sort.Strings(cities)
	out := make([]CityGroup, 0, len(cities))
	for _, c := range cities {
		out = append(out, CityGroup{City: c, Institutions: byCity[c]})
	}
	return out
}

// Unique collapses program rows into one entry per (name, city) pair, the
// "distinct institutions" view. First occurrence wins for the URL.
func Unique(all []Institution) []Institution {
	type key struct{ name, city string }
	seen := map[key]int{}
	var out []Institution
	for _, i := range all {
		k := key{i.Name, i.City}
		if idx, ok := seen[k]; ok {
			if out[idx].URL == "" && i.URL != "" {
				out[idx].URL = i.URL
			}
			continue
		}
		seen[k] = len(out)
		out = append(out, Institution{Name: i.Name, City: i.City, URL: i.URL})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Name != out[b].Name {
			return out[a].Name < out[b].Name
		}
		return out[a].City < out[b].City
	})
	return out
}

package domain

// Filter returns the records satisfying every supplied filter. Values are
// compared exactly; callers normalize the query with [Query.Normalized].
// The input slice is never modified.
func Filter(records []Record, q Query) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if q.Year != 0 && r.Year != q.Year {
			continue
		}
		if q.Province != "" && r.Province != q.Province {
			continue
		}
		if q.SpeciesGroup != "" && r.SpeciesGroup != q.SpeciesGroup {
			continue
		}
		out = append(out, r)
	}
	return out
}

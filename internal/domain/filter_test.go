package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filterFixture() []Record {
	return []Record{
		{Year: 2022, Province: "ACEH", SpeciesGroup: "Tuna", Status: "UNCERTAIN"},
		{Year: 2023, Province: "ACEH", SpeciesGroup: "Tuna", Status: "OVERFISHING"},
		{Year: 2023, Province: "ACEH", SpeciesGroup: "Tongkol", Status: "UNDERFISHING"},
		{Year: 2023, Province: "BALI", SpeciesGroup: "Tuna", Status: "OVERFISHING"},
		{Year: 2024, Province: "BALI", SpeciesGroup: "Cakalang"},
	}
}

func TestFilter_Combinations(t *testing.T) {
	records := filterFixture()

	queries := []Query{
		{},
		{Year: 2023},
		{Province: "ACEH"},
		{SpeciesGroup: "Tuna"},
		{Year: 2023, Province: "BALI"},
		{Year: 2023, Province: "ACEH", SpeciesGroup: "Tongkol"},
		{Year: 1999},
		{Province: "aceh"},
	}

	for _, q := range queries {
		out := Filter(records, q)
		for _, r := range out {
			assert.Contains(t, records, r, "output must be a subset of the input")
			if q.Year != 0 {
				assert.Equal(t, q.Year, r.Year)
			}
			if q.Province != "" {
				assert.Equal(t, q.Province, r.Province)
			}
			if q.SpeciesGroup != "" {
				assert.Equal(t, q.SpeciesGroup, r.SpeciesGroup)
			}
		}
	}
}

func TestFilter_Counts(t *testing.T) {
	records := filterFixture()

	assert.Len(t, Filter(records, Query{}), 5)
	assert.Len(t, Filter(records, Query{Year: 2023}), 3)
	assert.Len(t, Filter(records, Query{Year: 2023, SpeciesGroup: "Tuna"}), 2)
	assert.Empty(t, Filter(records, Query{Province: "aceh"}), "filter values are compared exactly")
	assert.NotNil(t, Filter(records, Query{Year: 1999}), "no match is an empty slice, not nil")
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := filterFixture()
	before := append([]Record(nil), records...)

	out := Filter(records, Query{Year: 2023})
	out[0].Province = "CHANGED"

	assert.Equal(t, before, records)
}

func TestQueryNormalized(t *testing.T) {
	q := Query{Year: 2023, Province: " aceh ", SpeciesGroup: " Tuna "}.Normalized()
	assert.Equal(t, Query{Year: 2023, Province: "ACEH", SpeciesGroup: "Tuna"}, q)
	assert.Len(t, Filter(filterFixture(), q), 1)
}

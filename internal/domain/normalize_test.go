package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"already normalized", "ACEH", "ACEH"},
		{"lower case", "aceh", "ACEH"},
		{"padded mixed case", "  Jawa Timur\t", "JAWA TIMUR"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := NormalizeKey(tt.in)
			assert.Equal(t, tt.expected, once)
			assert.Equal(t, once, NormalizeKey(once), "normalizing twice must be a no-op")
		})
	}
}

func TestNormalizeName(t *testing.T) {
	for _, in := range []string{" Tahun ", "Kelompok Ikan", "", "\tTP_C\n"} {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once))
	}
	assert.Equal(t, "Tahun", NormalizeName(" Tahun "))
	assert.Equal(t, "Kelompok Ikan", NormalizeName("Kelompok Ikan"), "inner spaces are kept")
}

func TestNormalizeNames_NilPassesThrough(t *testing.T) {
	assert.Nil(t, NormalizeNames(nil))
	assert.Equal(t, []string{"A", "B"}, NormalizeNames([]string{" A", "B "}))
}

func TestNormalizeRecord(t *testing.T) {
	r := NormalizeRecord(Record{Year: 2023, Province: " aceh ", SpeciesGroup: " Tuna ", Status: " OVERFISHING "})
	assert.Equal(t, "ACEH", r.Province)
	assert.Equal(t, "Tuna", r.SpeciesGroup)
	assert.Equal(t, "OVERFISHING", r.Status)
	assert.Equal(t, r, NormalizeRecord(r))
}

func TestNormalizeRegion(t *testing.T) {
	in := Region{
		Names:      []string{" PROVINSI ", "PROVINSI", "Shape_Area"},
		Attributes: map[string]string{" PROVINSI ": "Aceh", "PROVINSI": "dup", "Shape_Area": "1.5"},
	}

	out := NormalizeRegion(in)

	assert.Equal(t, []string{"PROVINSI", "Shape_Area"}, out.Names)
	assert.Equal(t, "Aceh", out.Attr("PROVINSI"), "first declared name wins on collision")
	assert.Equal(t, " PROVINSI ", in.Names[0], "input is not modified")
}

func TestAttributeNames_FirstSeenOrder(t *testing.T) {
	regions := []Region{
		{Names: []string{"KODE", "PROVINSI"}},
		{Names: []string{"PROVINSI", "Shape_Area"}},
	}
	assert.Equal(t, []string{"KODE", "PROVINSI", "Shape_Area"}, AttributeNames(regions))
}

package render_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
	"github.com/couchcryptid/fish-stock-map-service/internal/render"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestPopulationChart(t *testing.T) {
	rows := []domain.PopulationRow{
		{Year: 2022, SpeciesGroup: "Tuna", Province: "ACEH", Population: domain.Some(0.65)},
		{Year: 2023, SpeciesGroup: "Tuna", Province: "ACEH", Population: domain.Some(0.85)},
		{Year: 2023, SpeciesGroup: "Tuna", Province: "BALI", Population: domain.Some(0.45)},
		{Year: 2023, SpeciesGroup: "Lobster", Province: "BALI"},
		{Year: 2023, SpeciesGroup: "Udang", Province: "JAWA TIMUR", Population: domain.Some(1.35)},
	}

	var buf bytes.Buffer
	require.NoError(t, render.PopulationChart(&buf, rows))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestPopulationChart_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.PopulationChart(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

package dataset_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fish-stock-map-service/internal/dataset"
	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
)

func TestLoad(t *testing.T) {
	fixed := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { domain.SetClock(clockwork.NewRealClock()) })

	snap, err := dataset.Load("testdata/records.csv", "", "testdata/regions.geojson", slog.Default())
	require.NoError(t, err)

	assert.Len(t, snap.Records(), 4)
	assert.Len(t, snap.Regions(), 3)
	assert.Equal(t, []string{"OBJECTID", "KD_PROV", "PROVINSI", "Shape_Area", "tags"}, snap.Attributes())
	assert.Equal(t, fixed, snap.LoadedAt())
}

func TestLoad_MissingFiles(t *testing.T) {
	_, err := dataset.Load("testdata/none.csv", "", "testdata/regions.geojson", slog.Default())
	require.Error(t, err)

	_, err = dataset.Load("testdata/records.csv", "", "testdata/none.geojson", slog.Default())
	require.Error(t, err)
}

func TestSnapshot_AccessorsReturnCopies(t *testing.T) {
	snap := dataset.NewSnapshot(
		[]domain.Record{{Year: 2023, Province: "ACEH", SpeciesGroup: "Tuna"}},
		[]domain.Region{{Names: []string{"PROVINSI"}, Attributes: map[string]string{"PROVINSI": "ACEH"}}},
	)

	recs := snap.Records()
	recs[0].Province = "BALI"
	assert.Equal(t, "ACEH", snap.Records()[0].Province)

	attrs := snap.Attributes()
	attrs[0] = "X"
	assert.Equal(t, []string{"PROVINSI"}, snap.Attributes())
}

package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioRecords() []Record {
	return []Record{
		{Year: 2023, Province: "ACEH", SpeciesGroup: "Tuna", CatchTons: Some(100), Status: "OVERFISHING", TPC: Some(0.8), TPE: Some(0.9)},
		{Year: 2022, Province: "ACEH", SpeciesGroup: "Tuna", TPC: Some(0.6), TPE: Some(0.7)},
	}
}

func TestScenario_FilterSummarizeCards(t *testing.T) {
	records := scenarioRecords()

	filtered := Filter(records, Query{Year: 2023})
	require.Len(t, filtered, 1)

	summaries, err := SummarizeProvinces(filtered)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "ACEH", summaries[0].Province)
	assert.Equal(t, "OVERFISHING", summaries[0].Status)
	assert.InDelta(t, 100.0, summaries[0].TotalCatch, 1e-9)

	cards := SpeciesCards(records)
	require.Len(t, cards, 1)
	assert.Equal(t, "Tuna", cards[0].Name)
	assert.InDelta(t, 0.85, cards[0].Population, 1e-9)
	assert.InDelta(t, 0.65, cards[0].PopulationPrev, 1e-9)
	assert.InDelta(t, 30.77, cards[0].TrendPct, 1e-9)
	assert.Equal(t, "OVERFISHING", cards[0].Status)
}

func TestSummarizeProvinces_InfoText(t *testing.T) {
	records := []Record{
		{Year: 2023, Province: "BALI", SpeciesGroup: "Tuna", CatchTons: Some(100), Status: "OVERFISHING"},
		{Year: 2023, Province: "BALI", SpeciesGroup: "Tongkol", CatchTons: Some(12.5), Status: "UNDERFISHING"},
	}

	summaries, err := SummarizeProvinces(records)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	expected := "Tuna: 100.0 ton (OVERFISHING)\n" +
		"Tongkol: 12.5 ton (UNDERFISHING)\n" +
		"\n" +
		"Total tangkapan: 112 ton"
	assert.Equal(t, expected, summaries[0].InfoText)
	assert.InDelta(t, 112.5, summaries[0].TotalCatch, 1e-9)
}

func TestSummarizeProvinces_FirstStatusWins(t *testing.T) {
	records := []Record{
		{Province: "ACEH", SpeciesGroup: "Tuna"},
		{Province: "ACEH", SpeciesGroup: "Tongkol", Status: "UNCERTAIN"},
		{Province: "ACEH", SpeciesGroup: "Cakalang", Status: "OVERFISHING"},
		{Province: "BALI", SpeciesGroup: "Tuna"},
	}

	summaries, err := SummarizeProvinces(records)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "UNCERTAIN", summaries[0].Status, "first non-empty status wins")
	assert.Empty(t, summaries[1].Status, "all-empty group keeps an absent status")
	assert.Equal(t, "BALI", summaries[1].Province, "groups keep first-seen order")
}

func TestSummarizeProvinces_MissingCatch(t *testing.T) {
	summaries, err := SummarizeProvinces([]Record{{Province: "ACEH", SpeciesGroup: "Tuna"}})
	require.NoError(t, err)
	assert.Equal(t, "Tuna:  ton ()\n\nTotal tangkapan: 0 ton", summaries[0].InfoText)
	assert.Zero(t, summaries[0].TotalCatch)
}

func TestSummarizeProvinces_GroupsTotals(t *testing.T) {
	records := []Record{
		{Province: "ACEH", SpeciesGroup: "Tuna", CatchTons: Some(1500)},
		{Province: "ACEH", SpeciesGroup: "Tongkol", CatchTons: Some(1000)},
	}
	summaries, err := SummarizeProvinces(records)
	require.NoError(t, err)
	assert.Contains(t, summaries[0].InfoText, "Total tangkapan: 2,500 ton")
}

func TestSummarizeProvinces_Empty(t *testing.T) {
	summaries, err := SummarizeProvinces(nil)
	assert.True(t, errors.Is(err, ErrNoRecords))
	assert.Nil(t, summaries)
}

func TestSpeciesCards_ZeroPriorPopulation(t *testing.T) {
	records := []Record{
		{Year: 2024, SpeciesGroup: "Tuna", TPC: Some(0.5), TPE: Some(0.7)},
		{Year: 2023, SpeciesGroup: "Tuna", TPC: Some(0), TPE: Some(0)},
	}

	cards := SpeciesCards(records)
	require.Len(t, cards, 1)
	assert.Zero(t, cards[0].TrendPct)
	assert.InDelta(t, 0.6, cards[0].Population, 1e-9)
}

func TestSpeciesCards_MissingPriorYear(t *testing.T) {
	records := []Record{
		{Year: 2024, SpeciesGroup: "Tuna", TPC: Some(0.5), TPE: Some(0.7)},
		{Year: 2022, SpeciesGroup: "Tuna", TPC: Some(0.1), TPE: Some(0.1)},
	}

	cards := SpeciesCards(records)
	require.Len(t, cards, 1)
	assert.Zero(t, cards[0].TrendPct, "no fallback to older years")
	assert.Zero(t, cards[0].PopulationPrev)
}

func TestSpeciesCards_MissingLatestPopulation(t *testing.T) {
	records := []Record{
		{Year: 2023, SpeciesGroup: "Tuna", Status: "OVERFISHING"},
		{Year: 2022, SpeciesGroup: "Tuna", TPC: Some(0.6), TPE: Some(0.7)},
	}

	cards := SpeciesCards(records)
	require.Len(t, cards, 1)
	assert.Zero(t, cards[0].Population)
	assert.InDelta(t, 0.65, cards[0].PopulationPrev, 1e-9)
	assert.Zero(t, cards[0].TrendPct, "no trend without a latest population")
	assert.Equal(t, "OVERFISHING", cards[0].Status)
}

func TestSpeciesCards_FirstFiveInSourceOrder(t *testing.T) {
	names := []string{"Tuna", "Tongkol", "Cakalang", "Marlin", "Tenggiri", "Kakap"}
	var records []Record
	records = append(records, Record{Year: 2023, SpeciesGroup: "Lemuru", TPC: Some(1), TPE: Some(1)})
	for _, n := range names {
		records = append(records, Record{Year: 2024, SpeciesGroup: n, TPC: Some(1), TPE: Some(1), Status: "UNCERTAIN"})
	}
	records = append(records, Record{Year: 2024, SpeciesGroup: "Tuna", TPC: Some(3), TPE: Some(3), Status: "OVERFISHING"})

	cards := SpeciesCards(records)
	require.Len(t, cards, MaxSpeciesCards)

	got := make([]string, 0, len(cards))
	for _, c := range cards {
		got = append(got, c.Name)
	}
	assert.Equal(t, names[:5], got)
	assert.Equal(t, "UNCERTAIN", cards[0].Status, "status comes from the first latest-year record")
	assert.InDelta(t, 2.0, cards[0].Population, 1e-9)
}

func TestSpeciesCards_Empty(t *testing.T) {
	cards := SpeciesCards(nil)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestFormatTons(t *testing.T) {
	assert.Equal(t, "100.0", formatTons(Some(100)))
	assert.Equal(t, "12.25", formatTons(Some(12.25)))
	assert.Equal(t, "", formatTons(Number{}))
}

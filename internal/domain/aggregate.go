package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxSpeciesCards caps the dashboard card row.
const MaxSpeciesCards = 5

// TotalLinePrefix starts the closing line of a province info text. The
// renderer shows that line in bold.
const TotalLinePrefix = "Total tangkapan: "

// SummarizeProvinces groups records by province in first-seen order. The
// status of a province is the first non-empty status among its records;
// later conflicting statuses are ignored. Returns ErrNoRecords for an empty
// input so callers can take the no-data path.
func SummarizeProvinces(records []Record) ([]ProvinceSummary, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	type group struct {
		status string
		lines  []string
		total  float64
	}
	groups := make(map[string]*group)
	var order []string

	for _, r := range records {
		g, ok := groups[r.Province]
		if !ok {
			g = &group{}
			groups[r.Province] = g
			order = append(order, r.Province)
		}
		if g.status == "" && r.Status != "" {
			g.status = r.Status
		}
		g.lines = append(g.lines, fmt.Sprintf("%s: %s ton (%s)", r.SpeciesGroup, formatTons(r.CatchTons), r.Status))
		if r.CatchTons.Valid {
			g.total += r.CatchTons.Value
		}
	}

	summaries := make([]ProvinceSummary, 0, len(order))
	for _, province := range order {
		g := groups[province]
		summaries = append(summaries, ProvinceSummary{
			Province:   province,
			Status:     g.status,
			InfoText:   strings.Join(g.lines, "\n") + "\n\n" + TotalLinePrefix + formatTotal(g.total) + " ton",
			TotalCatch: g.total,
		})
	}
	return summaries, nil
}

// formatTons prints a catch value with thousands separators, keeping the
// decimals of the source value and at least one.
func formatTons(n Number) string {
	if !n.Valid {
		return ""
	}
	decimals := 1
	s := strconv.FormatFloat(n.Value, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		decimals = len(s) - i - 1
	}
	return message.NewPrinter(language.English).Sprintf(fmt.Sprintf("%%.%df", decimals), n.Value)
}

func formatTotal(v float64) string {
	return message.NewPrinter(language.English).Sprintf("%.0f", math.RoundToEven(v))
}

// SpeciesCards compares the two most recent years of the full dataset for
// the first five species groups seen in the latest year. Trend is 0 when
// either year has no population; there is no search for an older year.
func SpeciesCards(records []Record) []SpeciesCard {
	cards := []SpeciesCard{}
	if len(records) == 0 {
		return cards
	}

	latest := records[0].Year
	for _, r := range records[1:] {
		if r.Year > latest {
			latest = r.Year
		}
	}
	prev := latest - 1

	var species []string
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Year != latest {
			continue
		}
		if _, ok := seen[r.SpeciesGroup]; ok {
			continue
		}
		seen[r.SpeciesGroup] = struct{}{}
		species = append(species, r.SpeciesGroup)
		if len(species) == MaxSpeciesCards {
			break
		}
	}

	for _, name := range species {
		now, okNow := yearPopulation(records, latest, name)
		before, okBefore := yearPopulation(records, prev, name)

		trend := 0.0
		if okNow && okBefore && before != 0 {
			trend = (now - before) / before * 100
		}

		cards = append(cards, SpeciesCard{
			Name:           name,
			Population:     round2(now),
			PopulationPrev: round2(before),
			TrendPct:       round2(trend),
			Status:         firstStatus(records, latest, name),
		})
	}
	return cards
}

// yearPopulation averages the TP_C mean and the TP_E mean of one species in
// one year. It reports false when either column has no value.
func yearPopulation(records []Record, year int, species string) (float64, bool) {
	var sumC, sumE float64
	var nC, nE int
	for _, r := range records {
		if r.Year != year || r.SpeciesGroup != species {
			continue
		}
		if r.TPC.Valid {
			sumC += r.TPC.Value
			nC++
		}
		if r.TPE.Valid {
			sumE += r.TPE.Value
			nE++
		}
	}
	if nC == 0 || nE == 0 {
		return 0, false
	}
	return (sumC/float64(nC) + sumE/float64(nE)) / 2, true
}

func firstStatus(records []Record, year int, species string) string {
	for _, r := range records {
		if r.Year == year && r.SpeciesGroup == species {
			return r.Status
		}
	}
	return ""
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package domain

import (
	"slices"
	"sort"
)

// PopulationRow is one point of the population dashboard chart.
type PopulationRow struct {
	Year         int    `json:"tahun"`
	SpeciesGroup string `json:"kelompok_ikan"`
	Province     string `json:"provinsi"`
	Population   Number `json:"populasi"`
}

// PopulationRows projects records onto the population dashboard. A row's
// population is the mean of whichever of TP_C and TP_E are present.
func PopulationRows(records []Record) []PopulationRow {
	rows := make([]PopulationRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, PopulationRow{
			Year:         r.Year,
			SpeciesGroup: r.SpeciesGroup,
			Province:     r.Province,
			Population:   rowPopulation(r),
		})
	}
	return rows
}

func rowPopulation(r Record) Number {
	var sum float64
	var n int
	for _, v := range []Number{r.TPC, r.TPE} {
		if v.Valid {
			sum += v.Value
			n++
		}
	}
	if n == 0 {
		return Number{}
	}
	return Some(sum / float64(n))
}

// StatusRow is a record as shown in the status table. Missing cells are
// empty strings. Keys follow the source column names the dashboard reads.
type StatusRow struct {
	Year         int    `json:"Tahun"`
	SpeciesGroup string `json:"Kelompok Ikan"`
	Province     string `json:"Provinsi"`
	Effort       any    `json:"Effort (kapal)"`
	CPUE         any    `json:"CPUE (Ton/Trip)"`
	CatchTons    any    `json:"Hasil Tangkapan / Catch (Ton)"`
	TPC          any    `json:"TP_C"`
	TPE          any    `json:"TP_E"`
	MSY          any    `json:"MSY"`
	TP           any    `json:"TP"`
	Status       string `json:"Status"`
}

// StatusRows converts records for the status table.
func StatusRows(records []Record) []StatusRow {
	rows := make([]StatusRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, StatusRow{
			Year:         r.Year,
			SpeciesGroup: r.SpeciesGroup,
			Province:     r.Province,
			Effort:       r.Effort.OrEmpty(),
			CPUE:         r.CPUE.OrEmpty(),
			CatchTons:    r.CatchTons.OrEmpty(),
			TPC:          r.TPC.OrEmpty(),
			TPE:          r.TPE.OrEmpty(),
			MSY:          r.MSY.OrEmpty(),
			TP:           r.TP.OrEmpty(),
			Status:       r.Status,
		})
	}
	return rows
}

// FilterOptions lists the distinct values offered in the dashboard filters.
type FilterOptions struct {
	Years         []int    `json:"tahun"`
	Provinces     []string `json:"provinsi"`
	SpeciesGroups []string `json:"ikan"`
}

// Options collects sorted distinct years, provinces and species groups.
func Options(records []Record) FilterOptions {
	years := make(map[int]struct{})
	provinces := make(map[string]struct{})
	species := make(map[string]struct{})
	for _, r := range records {
		years[r.Year] = struct{}{}
		provinces[r.Province] = struct{}{}
		species[r.SpeciesGroup] = struct{}{}
	}

	opts := FilterOptions{
		Years:         make([]int, 0, len(years)),
		Provinces:     make([]string, 0, len(provinces)),
		SpeciesGroups: make([]string, 0, len(species)),
	}
	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	for p := range provinces {
		opts.Provinces = append(opts.Provinces, p)
	}
	for s := range species {
		opts.SpeciesGroups = append(opts.SpeciesGroups, s)
	}
	slices.Sort(opts.Years)
	sort.Strings(opts.Provinces)
	sort.Strings(opts.SpeciesGroups)
	return opts
}

// YearStatusCount holds the number of records per status label in one year.
type YearStatusCount struct {
	Year   int            `json:"tahun"`
	Counts map[string]int `json:"jumlah"`
}

// StatusDistribution is the ecology page's status breakdown.
type StatusDistribution struct {
	Years  []YearStatusCount `json:"per_tahun"`
	Totals map[string]int    `json:"total"`
}

// DistributeStatuses counts records per display status, per year and
// overall. Years are ascending.
func DistributeStatuses(records []Record) StatusDistribution {
	byYear := make(map[int]map[string]int)
	totals := make(map[string]int)
	for _, r := range records {
		label := DisplayStatus(r.Status)
		counts, ok := byYear[r.Year]
		if !ok {
			counts = make(map[string]int)
			byYear[r.Year] = counts
		}
		counts[label]++
		totals[label]++
	}

	dist := StatusDistribution{
		Years:  make([]YearStatusCount, 0, len(byYear)),
		Totals: totals,
	}
	for year, counts := range byYear {
		dist.Years = append(dist.Years, YearStatusCount{Year: year, Counts: counts})
	}
	sort.Slice(dist.Years, func(i, j int) bool { return dist.Years[i].Year < dist.Years[j].Year })
	return dist
}

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
)

// column identifies a Record field in the source table.
type column int

const (
	colYear column = iota
	colProvince
	colSpecies
	colEffort
	colCPUE
	colCatch
	colTPC
	colTPE
	colMSY
	colTP
	colStatus
)

// columnAliases lists the lower-cased header spellings seen in assessment
// exports for each field.
var columnAliases = map[column][]string{
	colYear:     {"tahun", "year"},
	colProvince: {"provinsi", "province"},
	colSpecies:  {"kelompok ikan", "kelompok_ikan", "species_group", "species group"},
	colEffort:   {"effort (kapal)", "effort"},
	colCPUE:     {"cpue (ton/trip)", "cpue"},
	colCatch:    {"hasil tangkapan / catch (ton)", "catch_tons", "catch (ton)", "catch"},
	colTPC:      {"tp_c"},
	colTPE:      {"tp_e"},
	colMSY:      {"msy"},
	colTP:       {"tp"},
	colStatus:   {"status"},
}

var requiredColumns = map[column]string{
	colYear:     "Tahun",
	colProvince: "Provinsi",
	colSpecies:  "Kelompok Ikan",
}

// RecordsReport describes what a load kept and dropped.
type RecordsReport struct {
	Rows    int
	Skipped int
}

// LoadRecords reads the record table from a .csv or .xlsx file. For
// workbooks an empty sheet selects the first sheet.
func LoadRecords(path, sheet string) ([]domain.Record, RecordsReport, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, RecordsReport{}, fmt.Errorf("open workbook %s: %w", path, err)
		}
		defer f.Close()
		return readWorkbook(f, sheet)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, RecordsReport{}, fmt.Errorf("open records %s: %w", path, err)
		}
		defer f.Close()
		return ReadRecordsCSV(f)
	}
}

// ReadRecordsCSV parses a CSV record table with a header row.
func ReadRecordsCSV(r io.Reader) ([]domain.Record, RecordsReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, RecordsReport{}, errors.New("records: empty file")
		}
		return nil, RecordsReport{}, fmt.Errorf("records: read header: %w", err)
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, RecordsReport{}, fmt.Errorf("records: read row: %w", err)
		}
		rows = append(rows, row)
	}
	return buildRecords(header, rows)
}

// ReadRecordsWorkbook parses the record table from an XLSX stream.
func ReadRecordsWorkbook(r io.Reader, sheet string) ([]domain.Record, RecordsReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, RecordsReport{}, fmt.Errorf("records: open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, sheet)
}

func readWorkbook(f *excelize.File, sheet string) ([]domain.Record, RecordsReport, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, RecordsReport{}, errors.New("records: workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, RecordsReport{}, fmt.Errorf("records: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, RecordsReport{}, fmt.Errorf("records: sheet %q is empty", sheet)
	}
	return buildRecords(rows[0], rows[1:])
}

// buildRecords maps header names onto fields and converts rows. Rows without
// a 4-digit year, a province or a species group are skipped. Extra columns
// are ignored.
func buildRecords(header []string, rows [][]string) ([]domain.Record, RecordsReport, error) {
	index, err := indexColumns(header)
	if err != nil {
		return nil, RecordsReport{}, err
	}

	report := RecordsReport{Rows: len(rows)}
	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		cell := func(c column) string {
			i, ok := index[c]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		year, ok := parseYear(cell(colYear))
		if !ok {
			report.Skipped++
			continue
		}

		rec := domain.NormalizeRecord(domain.Record{
			Year:         year,
			Province:     cell(colProvince),
			SpeciesGroup: cell(colSpecies),
			Effort:       parseNumber(cell(colEffort)),
			CPUE:         parseNumber(cell(colCPUE)),
			CatchTons:    parseNumber(cell(colCatch)),
			TPC:          parseNumber(cell(colTPC)),
			TPE:          parseNumber(cell(colTPE)),
			MSY:          parseNumber(cell(colMSY)),
			TP:           parseNumber(cell(colTP)),
			Status:       cell(colStatus),
		})
		if rec.Province == "" || rec.SpeciesGroup == "" {
			report.Skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, report, nil
}

func indexColumns(header []string) (map[column]int, error) {
	lookup := make(map[string]column)
	for c, aliases := range columnAliases {
		for _, a := range aliases {
			lookup[a] = c
		}
	}

	index := make(map[column]int)
	for i, name := range domain.NormalizeNames(header) {
		c, ok := lookup[strings.ToLower(strings.TrimPrefix(name, "\ufeff"))]
		if !ok {
			continue
		}
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}

	var missing []string
	for _, c := range []column{colYear, colProvince, colSpecies} {
		if _, ok := index[c]; !ok {
			missing = append(missing, requiredColumns[c])
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("records: missing required columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

// parseYear accepts "2023" and spreadsheet renderings such as "2023.0".
func parseYear(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, false
		}
		year = int(f)
	}
	if year < 1000 || year > 9999 {
		return 0, false
	}
	return year, true
}

// parseNumber returns an absent Number for empty or unparseable cells.
func parseNumber(s string) domain.Number {
	if s == "" {
		return domain.Number{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.Number{}
	}
	return domain.Some(v)
}

package domain

import (
	"encoding/json"

	"github.com/twpayne/go-geom"
)

// Number is a numeric cell that may be missing in the source table.
type Number struct {
	Value float64
	Valid bool
}

// Some returns a present Number.
func Some(v float64) Number {
	return Number{Value: v, Valid: true}
}

// MarshalJSON encodes a missing value as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// OrEmpty returns the value, or an empty string when it is missing.
func (n Number) OrEmpty() any {
	if !n.Valid {
		return ""
	}
	return n.Value
}

// Record is one row of the classified stock table. Province holds the
// normalized join key; Status is empty when the row was not classified.
type Record struct {
	Year         int
	Province     string
	SpeciesGroup string
	Effort       Number
	CPUE         Number
	CatchTons    Number
	TPC          Number
	TPE          Number
	MSY          Number
	TP           Number
	Status       string
}

// Region is one boundary polygon with its attributes. Names keeps the
// attribute names in the order they were declared in the source feature.
type Region struct {
	Geometry   geom.T
	Names      []string
	Attributes map[string]string
}

// Attr returns the value of a named attribute, or "" when absent.
func (r Region) Attr(name string) string {
	return r.Attributes[name]
}

// ProvinceSummary is the per-province view of a filtered record set.
type ProvinceSummary struct {
	Province   string
	Status     string
	InfoText   string
	TotalCatch float64
}

// StyledRegion is a Region ready for rendering.
type StyledRegion struct {
	Region   Region
	Province string
	Status   string
	Color    string
	InfoText string
	Matched  bool
}

// SpeciesCard summarizes one species group for the dashboard cards.
type SpeciesCard struct {
	Name           string  `json:"nama"`
	Population     float64 `json:"populasi"`
	PopulationPrev float64 `json:"populasi_sebelumnya"`
	TrendPct       float64 `json:"tren"`
	Status         string  `json:"status"`
}

// Query holds the optional dashboard filters. A zero Year and empty
// strings impose no constraint.
type Query struct {
	Year         int
	Province     string
	SpeciesGroup string
}

// Normalized returns the query with values in the same form as stored
// records, so exact comparison in [Filter] matches.
func (q Query) Normalized() Query {
	return Query{
		Year:         q.Year,
		Province:     NormalizeKey(q.Province),
		SpeciesGroup: NormalizeName(q.SpeciesGroup),
	}
}

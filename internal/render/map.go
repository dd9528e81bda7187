// Package render turns joined query results into the artifacts the
// dashboard serves: the status map page, the population chart and the
// status workbook.
package render

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"strings"
	"time"

	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/xy"

	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
)

// NoDataHTML is the placeholder served when a filter matches no records.
const NoDataHTML = "<p>Tidak ada data untuk filter ini.</p>"

//go:embed map.html.tmpl
var mapTemplateText string

var mapTemplate = template.Must(template.New("map").Parse(mapTemplateText))

// MapOptions controls the base layer and initial view.
type MapOptions struct {
	TilesURL    string
	Attribution string
	CenterLat   float64
	CenterLon   float64
	Zoom        int
}

// Artifact is a rendered map page.
type Artifact struct {
	HTML        string
	Degraded    bool
	Regions     int
	Unmatched   int
	CenterLat   float64
	CenterLon   float64
	GeneratedAt time.Time
}

// NoData returns the degraded artifact for an empty filter result.
func NoData() Artifact {
	return Artifact{
		HTML:        NoDataHTML,
		Degraded:    true,
		GeneratedAt: domain.Now(),
	}
}

// FocusOn centers opts on the centroid of region. Regions without a
// geometry, or whose centroid cannot be computed, leave opts unchanged.
func FocusOn(region domain.Region, opts MapOptions) MapOptions {
	if region.Geometry == nil {
		return opts
	}
	c, err := xy.Centroid(region.Geometry)
	if err != nil || len(c) < 2 {
		return opts
	}
	opts.CenterLon, opts.CenterLat = c[0], c[1]
	return opts
}

type legendEntry struct {
	Label string
	Color string
}

type mapPage struct {
	TilesURL    string
	Attribution string
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	Features    template.JS
	Legend      []legendEntry
}

// Map renders one styled layer per region on a tiled base map, with a
// hover tooltip, a click popup and the status legend. Regions without a
// geometry are counted but not drawn.
func Map(styled []domain.StyledRegion, opts MapOptions) (Artifact, error) {
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(styled))}
	unmatched := 0
	for _, s := range styled {
		if !s.Matched {
			unmatched++
		}
		if s.Region.Geometry == nil {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: s.Region.Geometry,
			Properties: map[string]any{
				"provinsi": s.Province,
				"status":   s.Status,
				"color":    s.Color,
				"tooltip":  Tooltip(s),
				"popup":    Popup(s),
			},
		})
	}

	features, err := json.Marshal(&fc)
	if err != nil {
		return Artifact{}, fmt.Errorf("encode map features: %w", err)
	}

	page := mapPage{
		TilesURL:    opts.TilesURL,
		Attribution: opts.Attribution,
		CenterLat:   opts.CenterLat,
		CenterLon:   opts.CenterLon,
		Zoom:        opts.Zoom,
		Features:    template.JS(features), //nolint:gosec // encoding/json escapes <, > and &
	}
	for _, st := range domain.StatusTable() {
		page.Legend = append(page.Legend, legendEntry{Label: st.Label, Color: st.Color})
	}

	var buf bytes.Buffer
	if err := mapTemplate.Execute(&buf, page); err != nil {
		return Artifact{}, fmt.Errorf("execute map template: %w", err)
	}
	return Artifact{
		HTML:        buf.String(),
		Regions:     len(styled),
		Unmatched:   unmatched,
		CenterLat:   opts.CenterLat,
		CenterLon:   opts.CenterLon,
		GeneratedAt: domain.Now(),
	}, nil
}

// Tooltip is the hover text of a region.
func Tooltip(s domain.StyledRegion) string {
	return "Provinsi: " + html.EscapeString(s.Province) + "<br>Status: " + html.EscapeString(s.Status)
}

// Popup is the click content of a region. Info text lines become HTML
// lines; for matched regions the closing total line is bold.
func Popup(s domain.StyledRegion) string {
	lines := strings.Split(s.InfoText, "\n")
	for i, line := range lines {
		lines[i] = html.EscapeString(line)
	}
	if s.Matched {
		last := len(lines) - 1
		if strings.HasPrefix(lines[last], domain.TotalLinePrefix) {
			lines[last] = "<b>" + lines[last] + "</b>"
		}
	}

	var b strings.Builder
	b.WriteString("<b>Provinsi:</b> ")
	b.WriteString(html.EscapeString(s.Province))
	b.WriteString("<br><b>Status:</b> ")
	b.WriteString(html.EscapeString(s.Status))
	b.WriteString("<br><b>Data Jenis Ikan:</b><br>")
	b.WriteString(strings.Join(lines, "<br>"))
	return b.String()
}

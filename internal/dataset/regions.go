package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cast"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
)

// rawCollection keeps properties undecoded so their declaration order can
// be recovered; a map would lose it.
type rawCollection struct {
	Type     string       `json:"type"`
	Features []rawFeature `json:"features"`
}

type rawFeature struct {
	Geometry   json.RawMessage `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
}

// LoadRegions reads a GeoJSON FeatureCollection of province boundaries.
func LoadRegions(path string) ([]domain.Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open regions %s: %w", path, err)
	}
	defer f.Close()
	return ReadRegions(f)
}

// ReadRegions decodes a FeatureCollection. Attribute names are trimmed and
// values are stringified; features with a null geometry are kept.
func ReadRegions(r io.Reader) ([]domain.Region, error) {
	var fc rawCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("regions: decode feature collection: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("regions: expected FeatureCollection, got %q", fc.Type)
	}

	regions := make([]domain.Region, 0, len(fc.Features))
	for i, feat := range fc.Features {
		g, err := decodeGeometry(feat.Geometry)
		if err != nil {
			return nil, fmt.Errorf("regions: feature %d: %w", i, err)
		}
		names, attrs, err := orderedProperties(feat.Properties)
		if err != nil {
			return nil, fmt.Errorf("regions: feature %d properties: %w", i, err)
		}
		regions = append(regions, domain.NormalizeRegion(domain.Region{
			Geometry:   g,
			Names:      names,
			Attributes: attrs,
		}))
	}
	return regions, nil
}

func decodeGeometry(raw json.RawMessage) (geom.T, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	var g geom.T
	if err := geojson.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	switch g.(type) {
	case *geom.Polygon, *geom.MultiPolygon:
		return g, nil
	default:
		return nil, fmt.Errorf("unsupported geometry %T", g)
	}
}

// orderedProperties walks a properties object token by token, returning the
// keys in declaration order and their values as strings.
func orderedProperties(raw json.RawMessage) ([]string, map[string]string, error) {
	attrs := make(map[string]string)
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, attrs, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errors.New("properties must be an object")
	}

	var names []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("property %q: %w", key, err)
		}
		if _, dup := attrs[key]; !dup {
			names = append(names, key)
		}
		attrs[key] = stringify(value)
	}
	return names, attrs, nil
}

// stringify renders scalar property values; nested values become "".
func stringify(v any) string {
	switch v.(type) {
	case map[string]any, []any:
		return ""
	}
	return cast.ToString(v)
}

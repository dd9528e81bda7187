package dataset

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
)

// Snapshot is the read-only data context shared by all queries. It is built
// once at startup and never modified; accessors hand out copies.
type Snapshot struct {
	records    []domain.Record
	regions    []domain.Region
	attributes []string
	loadedAt   time.Time
}

// NewSnapshot wraps already-loaded datasets. Regions are expected to be
// normalized.
func NewSnapshot(records []domain.Record, regions []domain.Region) *Snapshot {
	return &Snapshot{
		records:    slices.Clone(records),
		regions:    slices.Clone(regions),
		attributes: domain.AttributeNames(regions),
		loadedAt:   domain.Now(),
	}
}

// Load reads both datasets from disk.
func Load(recordsPath, sheet, regionsPath string, logger *slog.Logger) (*Snapshot, error) {
	records, report, err := LoadRecords(recordsPath, sheet)
	if err != nil {
		return nil, err
	}
	if report.Skipped > 0 {
		logger.Warn("skipped invalid record rows",
			"path", recordsPath,
			"rows", report.Rows,
			"skipped", report.Skipped,
		)
	}

	regions, err := LoadRegions(regionsPath)
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, fmt.Errorf("regions: %s has no features", regionsPath)
	}

	s := NewSnapshot(records, regions)
	logger.Info("datasets loaded",
		"records", len(s.records),
		"regions", len(s.regions),
		"attributes", s.attributes,
		"loaded_at", s.loadedAt,
	)
	return s, nil
}

// Records returns a copy of the record table.
func (s *Snapshot) Records() []domain.Record {
	return slices.Clone(s.records)
}

// Regions returns a copy of the region list. Geometries are shared and must
// be treated as read-only.
func (s *Snapshot) Regions() []domain.Region {
	return slices.Clone(s.regions)
}

// Attributes returns the polygon dataset's attribute names in first-seen order.
func (s *Snapshot) Attributes() []string {
	return slices.Clone(s.attributes)
}

// LoadedAt reports when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/fish-stock-map-service/internal/config"
	"github.com/couchcryptid/fish-stock-map-service/internal/dataset"
	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func validateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check dataset integrity and join coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, report, err := dataset.LoadRecords(cfg.RecordsPath, cfg.RecordsSheet)
			if err != nil {
				return err
			}
			regions, err := dataset.LoadRegions(cfg.RegionsPath)
			if err != nil {
				return err
			}
			if !runValidation(cmd.OutOrStdout(), records, report, regions) {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}
}

// runValidation prints a phase report and returns whether every phase passed.
func runValidation(w io.Writer, records []domain.Record, report dataset.RecordsReport, regions []domain.Region) bool {
	fmt.Fprintln(w, "=== Fish Stock Dataset Validation ===")
	fmt.Fprintln(w)

	key, keyPhase := validateProvinceKey(regions)
	phases := []*phase{
		validateRecordTable(records, report),
		keyPhase,
	}
	if key != "" {
		phases = append(phases, validateCoverage(records, regions, key)...)
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d rows read, %d kept, %d skipped; regions: %d", report.Rows, len(records), report.Skipped, len(regions))
	if key != "" {
		fmt.Fprintf(w, "; province key: %s", key)
	}
	fmt.Fprintln(w)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return true
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return false
}

func validateRecordTable(records []domain.Record, report dataset.RecordsReport) *phase {
	p := &phase{name: "Record table integrity"}
	if len(records) == 0 {
		p.errorf("no usable records")
	}
	if report.Skipped > 0 {
		p.errorf("%d rows skipped: invalid year or empty province/species group", report.Skipped)
	}

	known := make(map[string]struct{})
	for _, st := range domain.StatusTable() {
		known[st.Status] = struct{}{}
	}
	unknown := make(map[string]int)
	for _, r := range records {
		if r.Status == "" {
			continue
		}
		if _, ok := known[domain.NormalizeKey(r.Status)]; !ok {
			unknown[r.Status]++
		}
	}
	for _, status := range sortedKeys(unknown) {
		p.errorf("unknown status %q on %d records (rendered with the fallback color)", status, unknown[status])
	}
	return p
}

func validateProvinceKey(regions []domain.Region) (string, *phase) {
	p := &phase{name: "Province key resolution"}
	if len(regions) == 0 {
		p.errorf("boundary dataset has no features")
		return "", p
	}
	key, err := domain.ResolveProvinceKey(domain.AttributeNames(regions))
	if err != nil {
		p.errorf("%v", err)
		return "", p
	}
	for i, r := range regions {
		if domain.NormalizeKey(r.Attr(key)) == "" {
			p.errorf("feature %d has an empty %s", i, key)
		}
	}
	return key, p
}

// validateCoverage checks the join in both directions.
func validateCoverage(records []domain.Record, regions []domain.Region, key string) []*phase {
	withoutPolygon := &phase{name: "Record provinces with a polygon"}
	withoutRecords := &phase{name: "Polygons with records"}

	summaries, err := domain.SummarizeProvinces(records)
	if err != nil {
		return []*phase{withoutPolygon, withoutRecords}
	}
	for _, province := range domain.UnmatchedProvinces(regions, key, summaries) {
		withoutPolygon.errorf("province %q has records but no polygon", province)
	}

	for _, s := range domain.JoinRegions(regions, key, summaries) {
		if !s.Matched {
			withoutRecords.errorf("polygon %q has no records", s.Province)
		}
	}
	return []*phase{withoutPolygon, withoutRecords}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

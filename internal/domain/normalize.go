package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName trims surrounding whitespace from a column or attribute name.
func NormalizeName(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeKey trims and upper-cases a join key value. A Caser is stateful,
// so one is built per call.
func NormalizeKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return cases.Upper(language.Indonesian).String(s)
}

// NormalizeNames returns a trimmed copy of names.
func NormalizeNames(names []string) []string {
	if names == nil {
		return nil
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = NormalizeName(n)
	}
	return out
}

// NormalizeRecord key-normalizes the province and trims the species group
// and status.
func NormalizeRecord(r Record) Record {
	r.Province = NormalizeKey(r.Province)
	r.SpeciesGroup = NormalizeName(r.SpeciesGroup)
	r.Status = strings.TrimSpace(r.Status)
	return r
}

// NormalizeRegion returns a copy of r with trimmed attribute names. When two
// names collide after trimming the first declared one wins.
func NormalizeRegion(r Region) Region {
	out := Region{
		Geometry:   r.Geometry,
		Names:      make([]string, 0, len(r.Names)),
		Attributes: make(map[string]string, len(r.Attributes)),
	}
	for _, name := range r.Names {
		trimmed := NormalizeName(name)
		if _, dup := out.Attributes[trimmed]; dup {
			continue
		}
		out.Names = append(out.Names, trimmed)
		out.Attributes[trimmed] = r.Attributes[name]
	}
	return out
}

// AttributeNames returns the union of attribute names across regions in
// first-seen order, the column list of the polygon dataset.
func AttributeNames(regions []Region) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range regions {
		for _, n := range r.Names {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	return names
}

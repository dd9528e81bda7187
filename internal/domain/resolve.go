package domain

import "strings"

// KeyMatcher is one heuristic for recognising a join key attribute. Match
// receives the lower-cased attribute name.
type KeyMatcher struct {
	Name  string
	Match func(lower string) bool
}

func containsMatcher(fragment string) KeyMatcher {
	return KeyMatcher{
		Name:  "contains " + fragment,
		Match: func(lower string) bool { return strings.Contains(lower, fragment) },
	}
}

// ProvinceKeyPasses returns the matcher passes tried in order. A later pass
// is only consulted when no attribute satisfies an earlier one.
func ProvinceKeyPasses() [][]KeyMatcher {
	return [][]KeyMatcher{
		{containsMatcher("provinsi"), containsMatcher("wadmpr")},
		{containsMatcher("prov")},
	}
}

// ResolveProvinceKey picks the province attribute among names, preferring
// declaration order within a pass.
func ResolveProvinceKey(names []string) (string, error) {
	return resolveKey(names, ProvinceKeyPasses())
}

func resolveKey(names []string, passes [][]KeyMatcher) (string, error) {
	for _, pass := range passes {
		for _, name := range names {
			lower := strings.ToLower(name)
			for _, m := range pass {
				if m.Match(lower) {
					return name, nil
				}
			}
		}
	}
	return "", &SchemaResolutionError{Attributes: append([]string(nil), names...)}
}

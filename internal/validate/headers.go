package validate

import "sort"

// HeaderComparison is the set comparison between the template's expected
// columns and the columns actually present in a file. A file is header-valid
// when nothing is missing; extra columns alone do not fail it.
type HeaderComparison struct {
	Matching []string `json:"matching"`
	Missing  []string `json:"missing"`
	Extra    []string `json:"extra"`
	IsValid  bool     `json:"is_valid"`
}

// CompareHeaders compares expected and actual column names as sets.
// Duplicates and ordering collapse; the result slices are sorted so that
// identical inputs always produce identical reports.
func CompareHeaders(expected, actual []string) HeaderComparison {
	expectedSet := toSet(expected)
	actualSet := toSet(actual)

	cmp := HeaderComparison{
		Matching: []string{},
		Missing:  []string{},
		Extra:    []string{},
	}

	for name := range expectedSet {
		if _, ok := actualSet[name]; ok {
			cmp.Matching = append(cmp.Matching, name)
		} else {
			cmp.Missing = append(cmp.Missing, name)
		}
	}
	for name := range actualSet {
		if _, ok := expectedSet[name]; !ok {
			cmp.Extra = append(cmp.Extra, name)
		}
	}

	sort.Strings(cmp.Matching)
	sort.Strings(cmp.Missing)
	sort.Strings(cmp.Extra)
	cmp.IsValid = len(cmp.Missing) == 0
	return cmp
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

package engine

import (
	"sort"

	"github.com/phardev/apodata-backend/internal/domain"
)

// CombineCodeSets merges the per-source product code sets (explicit codes,
// laboratory expansion, segment expansion) into the effective code list.
// A nil set means the source is inactive and is skipped; a non-nil empty
// set participates, so a laboratory that expanded to nothing still empties
// an AND combination. With no active source the result is nil, which the
// repository treats as "no product filter".
func CombineCodeSets(mode domain.CombineMode, sets ...[]string) []string {
	active := make([][]string, 0, len(sets))
	for _, set := range sets {
		if set != nil {
			active = append(active, set)
		}
	}
	if len(active) == 0 {
		return nil
	}

	var combined map[string]struct{}
	if mode == domain.CombineAnd {
		combined = toSet(active[0])
		for _, set := range active[1:] {
			next := toSet(set)
			for code := range combined {
				if _, ok := next[code]; !ok {
					delete(combined, code)
				}
			}
		}
	} else {
		combined = make(map[string]struct{})
		for _, set := range active {
			for _, code := range set {
				if code != "" {
					combined[code] = struct{}{}
				}
			}
		}
	}

	result := make([]string, 0, len(combined))
	for code := range combined {
		result = append(result, code)
	}
	sort.Strings(result)
	return result
}

func toSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if code != "" {
			set[code] = struct{}{}
		}
	}
	return set
}

// ResolveScope builds the scope the repositories query with. An effective
// code list that came back empty degrades to an unfiltered plan rather
// than matching zero rows by accident; pharmacy narrowing is kept as-is.
func ResolveScope(pharmacyIDs []string, mode domain.CombineMode, codeSets ...[]string) domain.Scope {
	if mode != domain.CombineAnd {
		mode = domain.CombineOr
	}

	scope := domain.Scope{PharmacyIDs: dedupe(pharmacyIDs)}
	if codes := CombineCodeSets(mode, codeSets...); len(codes) > 0 {
		scope.ProductCodes = codes
	}
	return scope
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// ParseCombineMode normalizes the request's filter mode, defaulting to OR
func ParseCombineMode(mode string) domain.CombineMode {
	if mode == string(domain.CombineAnd) {
		return domain.CombineAnd
	}
	return domain.CombineOr
}

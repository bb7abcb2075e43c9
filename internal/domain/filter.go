package domain

// Period is an inclusive calendar-day range. Bounds are opaque YYYY-MM-DD
// strings; no timezone conversion is applied anywhere.
type Period struct {
	Start string `json:"startDate"`
	End   string `json:"endDate"`
}

// CombineMode controls how per-source product code sets are merged
type CombineMode string

const (
	CombineAnd CombineMode = "and"
	CombineOr  CombineMode = "or"
)

// SegmentRef identifies one segment selection, e.g. {category, DERMO}
type SegmentRef struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Scope narrows an aggregation to a set of pharmacies and/or products.
// A nil/empty slice means "match all" on that dimension; the distinction
// between "no product filter" and "filter expanded to nothing" is carried
// by the engine before the scope reaches the repository.
type Scope struct {
	PharmacyIDs  []string `json:"pharmacyIds"`
	ProductCodes []string `json:"code13refs"`
}

// HasPharmacyFilter reports whether pharmacy narrowing is active
func (s Scope) HasPharmacyFilter() bool { return len(s.PharmacyIDs) > 0 }

// HasProductFilter reports whether product narrowing is active
func (s Scope) HasProductFilter() bool { return len(s.ProductCodes) > 0 }

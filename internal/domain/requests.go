package domain

// SellinRequest is the body of POST /api/sales/sellin
type SellinRequest struct {
	StartDate           string       `json:"startDate"`
	EndDate             string       `json:"endDate"`
	ComparisonStartDate string       `json:"comparisonStartDate"`
	ComparisonEndDate   string       `json:"comparisonEndDate"`
	PharmacyIDs         []string     `json:"pharmacyIds"`
	Code13Refs          []string     `json:"code13refs"`
	Laboratories        []string     `json:"laboratories"`
	Segments            []SegmentRef `json:"segments"`
	FilterMode          string       `json:"filterMode"`
}

// SegmentRequest is the body (or query) of the segment endpoints
type SegmentRequest struct {
	StartDate    string       `json:"startDate"`
	EndDate      string       `json:"endDate"`
	SegmentType  string       `json:"segmentType"`
	PharmacyIDs  []string     `json:"pharmacyIds"`
	Code13Refs   []string     `json:"code13refs"`
	Laboratories []string     `json:"laboratories"`
	Segments     []SegmentRef `json:"segments"`
	FilterMode   string       `json:"filterMode"`
}

// SegmentEvolutionRequest carries both periods plus the segment dimension
type SegmentEvolutionRequest struct {
	StartDate           string       `json:"startDate"`
	EndDate             string       `json:"endDate"`
	ComparisonStartDate string       `json:"comparisonStartDate"`
	ComparisonEndDate   string       `json:"comparisonEndDate"`
	SegmentType         string       `json:"segmentType"`
	PharmacyIDs         []string     `json:"pharmacyIds"`
	Code13Refs          []string     `json:"code13refs"`
	Laboratories        []string     `json:"laboratories"`
	Segments            []SegmentRef `json:"segments"`
	FilterMode          string       `json:"filterMode"`
}

// ClassificationRequest scopes the margin/price/stock classification
// endpoints. The period bounds the sell-out history used for coverage.
type ClassificationRequest struct {
	StartDate    string       `json:"startDate"`
	EndDate      string       `json:"endDate"`
	PharmacyIDs  []string     `json:"pharmacyIds"`
	Code13Refs   []string     `json:"code13refs"`
	Laboratories []string     `json:"laboratories"`
	Segments     []SegmentRef `json:"segments"`
	FilterMode   string       `json:"filterMode"`
}

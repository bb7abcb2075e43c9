package engine

import (
	"sort"

	"github.com/phardev/apodata-backend/internal/domain"
)

// bandBoundary is one ordered band: values below Upper (or at Upper when
// Inclusive) that did not match an earlier band get Label.
type bandBoundary struct {
	Upper     float64
	Inclusive bool
	Label     string
}

// BandScheme is an ordered, first-match-wins partition of the real line.
// Every value maps to exactly one label: the boundaries cover everything
// below the last Upper, TopLabel covers the rest.
type BandScheme struct {
	Name     string
	bounds   []bandBoundary
	TopLabel string
}

// Classify returns the band label for a value
func (s BandScheme) Classify(value float64) string {
	for _, bound := range s.bounds {
		if value < bound.Upper || (bound.Inclusive && value == bound.Upper) {
			return bound.Label
		}
	}
	return s.TopLabel
}

// Labels returns every band label in band order
func (s BandScheme) Labels() []string {
	labels := make([]string, 0, len(s.bounds)+1)
	for _, bound := range s.bounds {
		labels = append(labels, bound.Label)
	}
	return append(labels, s.TopLabel)
}

var (
	// MarginBands buckets a margin percentage
	MarginBands = BandScheme{
		Name: "margin",
		bounds: []bandBoundary{
			{Upper: 0, Label: "negative"},
			{Upper: 10, Label: "low"},
			{Upper: 20, Label: "medium"},
			{Upper: 35, Inclusive: true, Label: "good"},
		},
		TopLabel: "excellent",
	}

	// PriceDeviationBands buckets a price deviation percentage vs average
	PriceDeviationBands = BandScheme{
		Name: "price-deviation",
		bounds: []bandBoundary{
			{Upper: -15, Label: "very-low"},
			{Upper: -5, Label: "low"},
			{Upper: 5, Inclusive: true, Label: "average"},
			{Upper: 15, Inclusive: true, Label: "high"},
		},
		TopLabel: "very-high",
	}

	// StockCoverageBands buckets a stock coverage expressed in months
	StockCoverageBands = BandScheme{
		Name: "stock-coverage",
		bounds: []bandBoundary{
			{Upper: 1, Label: "critical-low"},
			{Upper: 3, Label: "to-watch"},
			{Upper: 6, Inclusive: true, Label: "optimal"},
			{Upper: 12, Inclusive: true, Label: "over-stock"},
		},
		TopLabel: "critical-high",
	}
)

// defaultMonthlySales replaces a zero sales history in the coverage ratio
// so stockless-demand products do not produce infinite coverage
const defaultMonthlySales = 2.0

// StockCoverageMonths derives the coverage ratio for classification
func StockCoverageMonths(currentStock int, avgMonthlySales float64) float64 {
	if avgMonthlySales <= 0 {
		avgMonthlySales = defaultMonthlySales
	}
	return float64(currentStock) / avgMonthlySales
}

// GroupByBand classifies every product independently, then groups them by
// band in band order. Empty bands are kept with a zero count so the
// drill-down always sees the full partition.
func GroupByBand(scheme BandScheme, products []domain.ClassifiedProduct) []domain.BandGroup {
	byBand := make(map[string][]domain.ClassifiedProduct)
	for _, p := range products {
		p.Band = scheme.Classify(p.Value)
		byBand[p.Band] = append(byBand[p.Band], p)
	}

	groups := make([]domain.BandGroup, 0, len(scheme.bounds)+1)
	for _, label := range scheme.Labels() {
		members := byBand[label]
		sort.SliceStable(members, func(i, j int) bool { return members[i].Value < members[j].Value })
		groups = append(groups, domain.BandGroup{
			Band:     label,
			Count:    len(members),
			Products: members,
		})
	}
	return groups
}

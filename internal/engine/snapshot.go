package engine

import (
	"sort"

	"github.com/phardev/apodata-backend/internal/domain"
)

// PriceBook resolves weighted-average cost and retail price per product
// from its snapshot history. Resolution follows the source system: the
// globally most-recent snapshot wins, ties on the same date broken by the
// last row seen. ResolveAsOf bounds the lookup by a reference date for
// callers that want as-of-period semantics instead.
type PriceBook struct {
	history map[string][]domain.InventorySnapshot
}

// NewPriceBook indexes a snapshot history by product code. Rows may arrive
// in any order; each product's history is sorted by date ascending.
func NewPriceBook(snapshots []domain.InventorySnapshot) *PriceBook {
	history := make(map[string][]domain.InventorySnapshot)
	for _, snap := range snapshots {
		history[snap.ProductCode] = append(history[snap.ProductCode], snap)
	}
	for code := range history {
		rows := history[code]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
		history[code] = rows
	}
	return &PriceBook{history: history}
}

// WeightedAverageCost returns the most recent cost for the product, 0 when
// no snapshot exists
func (b *PriceBook) WeightedAverageCost(productCode string) float64 {
	if snap, ok := b.latest(productCode); ok {
		return snap.WeightedAverageCost
	}
	return 0
}

// RetailPrice returns the most recent retail price with tax, 0 when no
// snapshot exists
func (b *PriceBook) RetailPrice(productCode string) float64 {
	if snap, ok := b.latest(productCode); ok {
		return snap.RetailPriceWithTax
	}
	return 0
}

// ResolveAsOf returns the snapshot whose date is the closest one not after
// asOfDate. The second return is false when the product has no snapshot at
// or before that date.
func (b *PriceBook) ResolveAsOf(productCode, asOfDate string) (domain.InventorySnapshot, bool) {
	rows := b.history[productCode]
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Date <= asOfDate {
			return rows[i], true
		}
	}
	return domain.InventorySnapshot{}, false
}

func (b *PriceBook) latest(productCode string) (domain.InventorySnapshot, bool) {
	rows := b.history[productCode]
	if len(rows) == 0 {
		return domain.InventorySnapshot{}, false
	}
	return rows[len(rows)-1], true
}

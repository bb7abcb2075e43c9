package engine

import (
	"testing"

	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceBookLatestWinsRegardlessOfInputOrder(t *testing.T) {
	book := NewPriceBook([]domain.InventorySnapshot{
		{ProductCode: "111", Date: "2024-02-15", WeightedAverageCost: 4.80, RetailPriceWithTax: 7.90},
		{ProductCode: "111", Date: "2024-01-01", WeightedAverageCost: 4.20, RetailPriceWithTax: 7.50},
		{ProductCode: "222", Date: "2024-01-10", WeightedAverageCost: 1.10, RetailPriceWithTax: 2.00},
	})

	assert.Equal(t, 4.80, book.WeightedAverageCost("111"))
	assert.Equal(t, 7.90, book.RetailPrice("111"))
	assert.Equal(t, 2.00, book.RetailPrice("222"))
}

func TestPriceBookMissingProductResolvesToZero(t *testing.T) {
	book := NewPriceBook(nil)
	assert.Zero(t, book.WeightedAverageCost("unknown"))
	assert.Zero(t, book.RetailPrice("unknown"))
}

func TestPriceBookSameDateTieKeepsLastRow(t *testing.T) {
	book := NewPriceBook([]domain.InventorySnapshot{
		{ProductCode: "111", Date: "2024-01-01", WeightedAverageCost: 1.00},
		{ProductCode: "111", Date: "2024-01-01", WeightedAverageCost: 2.00},
	})
	assert.Equal(t, 2.00, book.WeightedAverageCost("111"))
}

func TestPriceBookResolveAsOf(t *testing.T) {
	book := NewPriceBook([]domain.InventorySnapshot{
		{ProductCode: "111", Date: "2024-01-01", WeightedAverageCost: 4.20},
		{ProductCode: "111", Date: "2024-02-15", WeightedAverageCost: 4.80},
	})

	snap, ok := book.ResolveAsOf("111", "2024-02-01")
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", snap.Date)

	// exact-date match counts
	snap, ok = book.ResolveAsOf("111", "2024-02-15")
	require.True(t, ok)
	assert.Equal(t, "2024-02-15", snap.Date)

	_, ok = book.ResolveAsOf("111", "2023-12-31")
	assert.False(t, ok)
}

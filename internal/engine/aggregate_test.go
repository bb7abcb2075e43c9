package engine

import (
	"testing"

	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var janPeriod = domain.Period{Start: "2024-01-01", End: "2024-01-31"}

func TestAggregatePeriodTwoProducts(t *testing.T) {
	lines := []domain.OrderLineFact{
		{OrderID: "o1", PharmacyID: "ph1", ProductCode: "111", SentDate: "2024-01-05", OrderedQuantity: 100, BonusQuantity: 10, ReceivedQuantity: 90},
		{OrderID: "o2", PharmacyID: "ph1", ProductCode: "222", SentDate: "2024-01-12", OrderedQuantity: 50, ReceivedQuantity: 50},
	}
	book := NewPriceBook([]domain.InventorySnapshot{
		{ProductCode: "111", Date: "2024-01-01", WeightedAverageCost: 3.00, RetailPriceWithTax: 5.00},
		{ProductCode: "222", Date: "2024-01-01", WeightedAverageCost: 1.50, RetailPriceWithTax: 2.00},
	})

	result := AggregatePeriod(janPeriod, lines, book)

	assert.Equal(t, 160, result.TotalOrderedQuantity) // bonus counts as ordered
	assert.Equal(t, 140, result.TotalPurchaseQuantity)
	assert.Equal(t, 20, result.TotalStockBreakQuantity)
	assert.Equal(t, 100.00, result.TotalStockBreakAmount) // 20 * retail 5.00
	assert.Equal(t, 12.5, result.StockBreakRate)          // 20 / 160 * 100
	assert.InDelta(t, 345.00, result.TotalPurchaseAmount, 1e-9)
	assert.InDelta(t, 345.0/140.0, result.AveragePurchasePrice, 1e-9)
	assert.Equal(t, 2, result.TotalOrders)

	require.NotNil(t, result.ActualDateRange.Min)
	require.NotNil(t, result.ActualDateRange.Max)
	assert.Equal(t, "2024-01-05", *result.ActualDateRange.Min)
	assert.Equal(t, "2024-01-12", *result.ActualDateRange.Max)
	assert.Equal(t, 2, result.ActualDateRange.Days)
}

func TestAggregatePeriodEmptyScope(t *testing.T) {
	result := AggregatePeriod(janPeriod, nil, NewPriceBook(nil))

	assert.Equal(t, janPeriod.Start, result.StartDate)
	assert.Equal(t, janPeriod.End, result.EndDate)
	assert.Zero(t, result.TotalPurchaseQuantity)
	assert.Zero(t, result.TotalPurchaseAmount)
	assert.Zero(t, result.TotalOrders)
	assert.Zero(t, result.StockBreakRate)
	assert.Nil(t, result.ActualDateRange.Min)
	assert.Nil(t, result.ActualDateRange.Max)
	assert.Zero(t, result.ActualDateRange.Days)
}

func TestAggregatePeriodMissingSnapshotKeepsQuantities(t *testing.T) {
	lines := []domain.OrderLineFact{
		{OrderID: "o1", ProductCode: "999", SentDate: "2024-01-05", OrderedQuantity: 30, ReceivedQuantity: 20},
	}

	result := AggregatePeriod(janPeriod, lines, NewPriceBook(nil))

	assert.Equal(t, 30, result.TotalOrderedQuantity)
	assert.Equal(t, 20, result.TotalPurchaseQuantity)
	assert.Equal(t, 10, result.TotalStockBreakQuantity)
	assert.Zero(t, result.TotalPurchaseAmount)
	assert.Zero(t, result.TotalStockBreakAmount)
	assert.Zero(t, result.AveragePurchasePrice)
	assert.InDelta(t, 33.33, result.StockBreakRate, 1e-9)
}

func TestAggregatePeriodBreakFlooredPerLine(t *testing.T) {
	// over-delivery on one line must not cancel a shortfall on another
	lines := []domain.OrderLineFact{
		{OrderID: "o1", ProductCode: "111", SentDate: "2024-01-03", OrderedQuantity: 10, ReceivedQuantity: 15},
		{OrderID: "o2", ProductCode: "111", SentDate: "2024-01-07", OrderedQuantity: 10, ReceivedQuantity: 5},
	}

	result := AggregatePeriod(janPeriod, lines, NewPriceBook(nil))

	assert.Equal(t, 5, result.TotalStockBreakQuantity)
	assert.Equal(t, 20, result.TotalPurchaseQuantity)
}

func TestAggregatePeriodAdditiveOverDisjointLineSets(t *testing.T) {
	book := NewPriceBook([]domain.InventorySnapshot{
		{ProductCode: "111", Date: "2024-01-01", WeightedAverageCost: 3.00, RetailPriceWithTax: 5.00},
		{ProductCode: "222", Date: "2024-01-01", WeightedAverageCost: 1.50, RetailPriceWithTax: 2.00},
	})
	setA := []domain.OrderLineFact{
		{OrderID: "o1", ProductCode: "111", SentDate: "2024-01-05", OrderedQuantity: 40, ReceivedQuantity: 35},
	}
	setB := []domain.OrderLineFact{
		{OrderID: "o2", ProductCode: "222", SentDate: "2024-01-08", OrderedQuantity: 25, ReceivedQuantity: 25},
		{OrderID: "o3", ProductCode: "111", SentDate: "2024-01-20", OrderedQuantity: 10, ReceivedQuantity: 10},
	}

	partA := AggregatePeriod(janPeriod, setA, book)
	partB := AggregatePeriod(janPeriod, setB, book)
	whole := AggregatePeriod(janPeriod, append(append([]domain.OrderLineFact{}, setA...), setB...), book)

	assert.Equal(t, partA.TotalOrderedQuantity+partB.TotalOrderedQuantity, whole.TotalOrderedQuantity)
	assert.Equal(t, partA.TotalPurchaseQuantity+partB.TotalPurchaseQuantity, whole.TotalPurchaseQuantity)
	assert.Equal(t, partA.TotalStockBreakQuantity+partB.TotalStockBreakQuantity, whole.TotalStockBreakQuantity)
	assert.InDelta(t, partA.TotalPurchaseAmount+partB.TotalPurchaseAmount, whole.TotalPurchaseAmount, 1e-9)
	assert.InDelta(t, partA.TotalStockBreakAmount+partB.TotalStockBreakAmount, whole.TotalStockBreakAmount, 1e-9)
	assert.Equal(t, partA.TotalOrders+partB.TotalOrders, whole.TotalOrders)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.5, Round2(12.5))
	assert.Equal(t, 33.33, Round2(100.0/3.0))
	assert.Equal(t, -0.67, Round2(-2.0/3.0))
}

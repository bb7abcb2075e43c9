package engine

import (
	"testing"

	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEvolvePositiveBaseline(t *testing.T) {
	evo := Evolve(150, 100)
	assert.Equal(t, 50.0, evo.Absolute)
	assert.Equal(t, 50.0, evo.Percentage)
	assert.True(t, evo.IsPositive)

	evo = Evolve(80, 100)
	assert.Equal(t, -20.0, evo.Absolute)
	assert.Equal(t, -20.0, evo.Percentage)
	assert.False(t, evo.IsPositive)
}

func TestEvolveNonPositiveBaselineZeroesPercentage(t *testing.T) {
	evo := Evolve(42, 0)
	assert.Equal(t, 42.0, evo.Absolute)
	assert.Zero(t, evo.Percentage)
	assert.True(t, evo.IsPositive)

	evo = Evolve(42, -5)
	assert.Equal(t, 47.0, evo.Absolute)
	assert.Zero(t, evo.Percentage)
}

func TestEvolveZeroDeltaIsPositive(t *testing.T) {
	evo := Evolve(100, 100)
	assert.Zero(t, evo.Absolute)
	assert.Zero(t, evo.Percentage)
	assert.True(t, evo.IsPositive)
}

func TestEvolutionBetweenCoversEveryMetric(t *testing.T) {
	current := domain.MetricPeriodResult{
		TotalPurchaseQuantity:   140,
		TotalPurchaseAmount:     345,
		TotalOrders:             2,
		AveragePurchasePrice:    2.46,
		TotalOrderedQuantity:    160,
		TotalStockBreakQuantity: 20,
		TotalStockBreakAmount:   100,
		StockBreakRate:          12.5,
	}
	comparison := domain.MetricPeriodResult{
		TotalPurchaseQuantity:   100,
		TotalPurchaseAmount:     300,
		TotalOrders:             2,
		AveragePurchasePrice:    3.00,
		TotalOrderedQuantity:    100,
		TotalStockBreakQuantity: 0,
		TotalStockBreakAmount:   0,
		StockBreakRate:          0,
	}

	evolution := EvolutionBetween(current, comparison)

	assert.Len(t, evolution, 8)
	for _, key := range []string{
		"purchaseQuantity", "purchaseAmount", "orders", "averagePurchasePrice",
		"orderedQuantity", "stockBreakQuantity", "stockBreakAmount", "stockBreakRate",
	} {
		assert.Contains(t, evolution, key)
	}

	assert.Equal(t, 40.0, evolution["purchaseQuantity"].Absolute)
	assert.Equal(t, 40.0, evolution["purchaseQuantity"].Percentage)
	assert.Equal(t, 15.0, evolution["purchaseAmount"].Percentage)
	// zero baseline: absolute delta carried, percentage suppressed
	assert.Equal(t, 20.0, evolution["stockBreakQuantity"].Absolute)
	assert.Zero(t, evolution["stockBreakQuantity"].Percentage)
}

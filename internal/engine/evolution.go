package engine

import "github.com/phardev/apodata-backend/internal/domain"

// Evolve compares a current metric value against its comparison-period
// baseline. The percentage guard is strict: a zero or negative baseline
// yields 0, matching the source system's behavior rather than computing a
// change against a negative base.
func Evolve(current, comparison float64) domain.Evolution {
	absolute := current - comparison

	var percentage float64
	if comparison > 0 {
		percentage = Round2(absolute / comparison * 100)
	}

	return domain.Evolution{
		Absolute:   absolute,
		Percentage: percentage,
		IsPositive: absolute >= 0,
	}
}

// EvolutionBetween applies Evolve to every tracked sell-in metric pair
func EvolutionBetween(current, comparison domain.MetricPeriodResult) map[string]domain.Evolution {
	return map[string]domain.Evolution{
		"purchaseQuantity":     Evolve(float64(current.TotalPurchaseQuantity), float64(comparison.TotalPurchaseQuantity)),
		"purchaseAmount":       Evolve(current.TotalPurchaseAmount, comparison.TotalPurchaseAmount),
		"orders":               Evolve(float64(current.TotalOrders), float64(comparison.TotalOrders)),
		"averagePurchasePrice": Evolve(current.AveragePurchasePrice, comparison.AveragePurchasePrice),
		"orderedQuantity":      Evolve(float64(current.TotalOrderedQuantity), float64(comparison.TotalOrderedQuantity)),
		"stockBreakQuantity":   Evolve(float64(current.TotalStockBreakQuantity), float64(comparison.TotalStockBreakQuantity)),
		"stockBreakAmount":     Evolve(current.TotalStockBreakAmount, comparison.TotalStockBreakAmount),
		"stockBreakRate":       Evolve(current.StockBreakRate, comparison.StockBreakRate),
	}
}

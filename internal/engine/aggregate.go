package engine

import (
	"math"

	"github.com/phardev/apodata-backend/internal/domain"
)

type productTotals struct {
	ordered  int
	received int
	stockGap int
}

// AggregatePeriod computes the sell-in totals for one (scope, period)
// pair. Lines are grouped per product; the stock-break quantity of a line
// is the shortfall between ordered-plus-bonus and received, floored at
// zero. Monetary figures come from the price book: break amount uses the
// retail price, purchase amount the weighted-average cost, both 0 when a
// product has no snapshot — those products still contribute their
// quantities. An empty line set yields all-zero totals with null min/max
// dates, never an error.
func AggregatePeriod(period domain.Period, lines []domain.OrderLineFact, book *PriceBook) domain.MetricPeriodResult {
	result := domain.MetricPeriodResult{
		StartDate: period.Start,
		EndDate:   period.End,
	}

	byProduct := make(map[string]*productTotals)
	orderIDs := make(map[string]struct{})
	orderDays := make(map[string]struct{})
	var minDate, maxDate string

	for _, line := range lines {
		totals, ok := byProduct[line.ProductCode]
		if !ok {
			totals = &productTotals{}
			byProduct[line.ProductCode] = totals
		}

		lineOrdered := line.OrderedQuantity + line.BonusQuantity
		totals.ordered += lineOrdered
		totals.received += line.ReceivedQuantity
		if gap := lineOrdered - line.ReceivedQuantity; gap > 0 {
			totals.stockGap += gap
		}

		orderIDs[line.OrderID] = struct{}{}
		if line.SentDate != "" {
			orderDays[line.SentDate] = struct{}{}
			if minDate == "" || line.SentDate < minDate {
				minDate = line.SentDate
			}
			if maxDate == "" || line.SentDate > maxDate {
				maxDate = line.SentDate
			}
		}
	}

	for code, totals := range byProduct {
		retail := book.RetailPrice(code)
		cost := book.WeightedAverageCost(code)

		result.TotalOrderedQuantity += totals.ordered
		result.TotalPurchaseQuantity += totals.received
		result.TotalStockBreakQuantity += totals.stockGap
		result.TotalStockBreakAmount += float64(totals.stockGap) * retail
		result.TotalPurchaseAmount += float64(totals.received) * cost
	}

	result.TotalOrders = len(orderIDs)
	result.ActualDateRange.Days = len(orderDays)
	if minDate != "" {
		result.ActualDateRange.Min = &minDate
	}
	if maxDate != "" {
		result.ActualDateRange.Max = &maxDate
	}

	if result.TotalOrderedQuantity > 0 {
		result.StockBreakRate = Round2(float64(result.TotalStockBreakQuantity) / float64(result.TotalOrderedQuantity) * 100)
	}
	if result.TotalPurchaseQuantity > 0 {
		result.AveragePurchasePrice = result.TotalPurchaseAmount / float64(result.TotalPurchaseQuantity)
	}

	return result
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package repository

import (
	"context"

	"github.com/phardev/apodata-backend/internal/domain"
)

// SalesRepository fetches the raw facts the aggregation engine works on.
// Implementations must honor context cancellation on every query.
type SalesRepository interface {
	// FetchOrderLineFacts returns every order line whose parent order was
	// sent inside the period, narrowed by the scope
	FetchOrderLineFacts(ctx context.Context, period domain.Period, scope domain.Scope) ([]domain.OrderLineFact, error)

	// FetchSnapshotHistory returns the full snapshot history for the given
	// product codes, oldest first
	FetchSnapshotHistory(ctx context.Context, productCodes []string) ([]domain.InventorySnapshot, error)

	// FetchSegmentSales aggregates sell-out revenue/margin per segment value
	FetchSegmentSales(ctx context.Context, period domain.Period, scope domain.Scope, segmentType string) ([]domain.SegmentSalesRow, error)

	// FetchSegmentPurchases aggregates sell-in per segment value
	FetchSegmentPurchases(ctx context.Context, period domain.Period, scope domain.Scope, segmentType string) ([]domain.SegmentPurchaseRow, error)

	// FetchSegmentStock aggregates the current stock position per segment value
	FetchSegmentStock(ctx context.Context, scope domain.Scope, segmentType string) ([]domain.SegmentStockRow, error)

	// FetchProductMetrics returns per-product price/cost/stock/sales figures
	// for the classification endpoints; the period bounds the sales history
	FetchProductMetrics(ctx context.Context, period domain.Period, scope domain.Scope) ([]domain.ProductMetric, error)
}

// CatalogRepository serves the filter dimensions of the dashboard sidebar
type CatalogRepository interface {
	GetPharmacies(ctx context.Context) ([]domain.Pharmacy, error)
	SearchProducts(ctx context.Context, search string, limit, offset int) ([]domain.Product, error)
	GetLaboratories(ctx context.Context) ([]string, error)
	GetSegmentValues(ctx context.Context, segmentType string) ([]string, error)

	// ExpandLaboratories resolves laboratory names to product codes. A nil
	// input returns nil; an input that matches nothing returns an empty,
	// non-nil slice so AND combinations can tell the difference.
	ExpandLaboratories(ctx context.Context, laboratories []string) ([]string, error)

	// ExpandSegments resolves segment selections to product codes with the
	// same nil/empty contract as ExpandLaboratories
	ExpandSegments(ctx context.Context, segments []domain.SegmentRef) ([]string, error)
}

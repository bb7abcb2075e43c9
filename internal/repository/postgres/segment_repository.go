package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

func (r *salesRepository) FetchSegmentSales(ctx context.Context, period domain.Period, scope domain.Scope, segmentType string) ([]domain.SegmentSalesRow, error) {
	column := segmentColumn(segmentType)
	scopeClause, scopeArgs := buildScopeClause(scope, "s.pharmacy_id", "s.product_code", 3)

	// Margin per row: quantity * (price excl. tax - weighted average cost),
	// with the tax rate taken from product master data.
	query := fmt.Sprintf(`
        SELECT
            COALESCE(p.%[1]s, '') AS segment,
            COALESCE(SUM(s.quantity * s.price_with_tax), 0) AS revenue,
            COALESCE(SUM(s.quantity * (s.price_with_tax / (1 + p.tva_percentage / 100) - s.weighted_average_price)), 0) AS margin,
            COALESCE(SUM(s.quantity), 0) AS quantity,
            COUNT(DISTINCT s.product_code) AS product_count
        FROM sales s
        JOIN products p ON s.product_code = p.code_13_ref
        WHERE s.sale_date BETWEEN $1 AND $2 %[2]s
        GROUP BY 1
        ORDER BY revenue DESC
    `, column, scopeClause)

	args := append([]interface{}{period.Start, period.End}, scopeArgs...)

	var rows []domain.SegmentSalesRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch segment sales: %w", err)
	}

	log.Debug().
		Str("segment_type", segmentType).
		Int("segment_rows", len(rows)).
		Msg("segment: sell-out distribution fetched")

	return rows, nil
}

func (r *salesRepository) FetchSegmentPurchases(ctx context.Context, period domain.Period, scope domain.Scope, segmentType string) ([]domain.SegmentPurchaseRow, error) {
	column := segmentColumn(segmentType)
	scopeClause, scopeArgs := buildScopeClause(scope, "o.pharmacy_id", "ol.product_code", 3)

	query := fmt.Sprintf(`
        WITH latest_snapshot AS (
            SELECT
                product_code,
                weighted_average_price,
                ROW_NUMBER() OVER (PARTITION BY product_code ORDER BY date DESC) AS rn
            FROM inventory_snapshots
        )
        SELECT
            COALESCE(p.%[1]s, '') AS segment,
            COALESCE(SUM(ol.quantity + ol.bonus_quantity), 0) AS ordered_quantity,
            COALESCE(SUM(ol.received_quantity), 0) AS received_quantity,
            COALESCE(SUM(ol.received_quantity * COALESCE(ls.weighted_average_price, 0)), 0) AS purchase_amount
        FROM order_lines ol
        JOIN orders o ON ol.order_id = o.id
        JOIN products p ON ol.product_code = p.code_13_ref
        LEFT JOIN latest_snapshot ls ON ls.product_code = ol.product_code AND ls.rn = 1
        WHERE o.sent_date BETWEEN $1 AND $2 %[2]s
        GROUP BY 1
        ORDER BY purchase_amount DESC
    `, column, scopeClause)

	args := append([]interface{}{period.Start, period.End}, scopeArgs...)

	var rows []domain.SegmentPurchaseRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch segment purchases: %w", err)
	}

	return rows, nil
}

func (r *salesRepository) FetchSegmentStock(ctx context.Context, scope domain.Scope, segmentType string) ([]domain.SegmentStockRow, error) {
	column := segmentColumn(segmentType)

	// Stock lives on product master data; only the product dimension of the
	// scope applies here.
	scopeClause, scopeArgs := buildScopeClause(scope, "", "p.code_13_ref", 1)

	query := fmt.Sprintf(`
        WITH latest_snapshot AS (
            SELECT
                product_code,
                weighted_average_price,
                ROW_NUMBER() OVER (PARTITION BY product_code ORDER BY date DESC) AS rn
            FROM inventory_snapshots
        )
        SELECT
            COALESCE(p.%[1]s, '') AS segment,
            COALESCE(SUM(p.current_stock), 0) AS stock_units,
            COALESCE(SUM(p.current_stock * COALESCE(ls.weighted_average_price, 0)), 0) AS stock_value,
            COUNT(*) AS product_count
        FROM products p
        LEFT JOIN latest_snapshot ls ON ls.product_code = p.code_13_ref AND ls.rn = 1
        WHERE TRUE %[2]s
        GROUP BY 1
        ORDER BY stock_value DESC
    `, column, scopeClause)

	var rows []domain.SegmentStockRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, scopeArgs...); err != nil {
		return nil, fmt.Errorf("failed to fetch segment stock: %w", err)
	}

	return rows, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

func (r *salesRepository) FetchProductMetrics(ctx context.Context, period domain.Period, scope domain.Scope) ([]domain.ProductMetric, error) {
	salesScope, salesArgs := buildScopeClause(scope, "s.pharmacy_id", "", 3)
	productScope, productArgs := buildScopeClause(scope, "", "p.code_13_ref", 3+len(salesArgs))

	// group_avg_price is the average latest retail price across the
	// product's category, the baseline for price-deviation classification.
	query := fmt.Sprintf(`
        WITH latest_snapshot AS (
            SELECT
                product_code,
                price_with_tax,
                weighted_average_price,
                ROW_NUMBER() OVER (PARTITION BY product_code ORDER BY date DESC) AS rn
            FROM inventory_snapshots
        ),
        sold AS (
            SELECT s.product_code, SUM(s.quantity) AS sold_quantity
            FROM sales s
            WHERE s.sale_date BETWEEN $1 AND $2 %s
            GROUP BY s.product_code
        )
        SELECT
            p.code_13_ref,
            p.name,
            p.laboratory,
            COALESCE(ls.price_with_tax, 0) AS price_with_tax,
            COALESCE(p.tva_percentage, 0) AS tva_percentage,
            COALESCE(ls.weighted_average_price, 0) AS weighted_average_price,
            COALESCE(AVG(COALESCE(ls.price_with_tax, 0)) OVER (PARTITION BY p.category), 0) AS group_avg_price,
            COALESCE(p.current_stock, 0) AS current_stock,
            COALESCE(sd.sold_quantity, 0) AS sold_quantity
        FROM products p
        LEFT JOIN latest_snapshot ls ON ls.product_code = p.code_13_ref AND ls.rn = 1
        LEFT JOIN sold sd ON sd.product_code = p.code_13_ref
        WHERE TRUE %s
        ORDER BY p.code_13_ref
    `, salesScope, productScope)

	args := append([]interface{}{period.Start, period.End}, salesArgs...)
	args = append(args, productArgs...)

	var metrics []domain.ProductMetric
	if err := sqlx.SelectContext(ctx, r.db, &metrics, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch product metrics: %w", err)
	}

	log.Debug().Int("product_rows", len(metrics)).Msg("classification: product metrics fetched")

	return metrics, nil
}

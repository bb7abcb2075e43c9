package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/phardev/apodata-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

type salesRepository struct {
	db *DB
}

// NewSalesRepository creates a postgres-backed SalesRepository
func NewSalesRepository(db *DB) repository.SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) FetchOrderLineFacts(ctx context.Context, period domain.Period, scope domain.Scope) ([]domain.OrderLineFact, error) {
	scopeClause, scopeArgs := buildScopeClause(scope, "o.pharmacy_id", "ol.product_code", 3)

	query := fmt.Sprintf(`
        SELECT
            o.id AS order_id,
            o.pharmacy_id,
            ol.product_code,
            TO_CHAR(o.sent_date, 'YYYY-MM-DD') AS sent_date,
            COALESCE(ol.quantity, 0) AS ordered_quantity,
            COALESCE(ol.bonus_quantity, 0) AS bonus_quantity,
            COALESCE(ol.received_quantity, 0) AS received_quantity
        FROM order_lines ol
        JOIN orders o ON ol.order_id = o.id
        WHERE o.sent_date BETWEEN $1 AND $2 %s
        ORDER BY o.sent_date, o.id
    `, scopeClause)

	args := append([]interface{}{period.Start, period.End}, scopeArgs...)

	if scopeClause != "" {
		log.Debug().
			Str("scope_clause", scopeClause).
			Int("args", len(args)).
			Msg("sellin: order line facts applying scope")
	}

	var facts []domain.OrderLineFact
	if err := sqlx.SelectContext(ctx, r.db, &facts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch order line facts: %w", err)
	}

	log.Debug().Int("fact_rows", len(facts)).Msg("sellin: order line facts fetched")

	return facts, nil
}

func (r *salesRepository) FetchSnapshotHistory(ctx context.Context, productCodes []string) ([]domain.InventorySnapshot, error) {
	if len(productCodes) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
        SELECT
            product_code,
            TO_CHAR(date, 'YYYY-MM-DD') AS date,
            COALESCE(weighted_average_price, 0) AS weighted_average_price,
            COALESCE(price_with_tax, 0) AS price_with_tax
        FROM inventory_snapshots
        WHERE product_code IN (?)
        ORDER BY product_code, date
    `, productCodes)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot query: %w", err)
	}
	query = r.db.Rebind(query)

	var snapshots []domain.InventorySnapshot
	if err := sqlx.SelectContext(ctx, r.db, &snapshots, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot history: %w", err)
	}

	return snapshots, nil
}

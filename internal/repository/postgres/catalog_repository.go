package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/phardev/apodata-backend/internal/repository"
)

type catalogRepository struct {
	db *DB
}

// NewCatalogRepository creates a postgres-backed CatalogRepository
func NewCatalogRepository(db *DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetPharmacies(ctx context.Context) ([]domain.Pharmacy, error) {
	query := `
        SELECT id, name, COALESCE(area, '') AS area,
               COALESCE(ca_bracket, '') AS ca_bracket,
               COALESCE(employees_count, 0) AS employees_count
        FROM pharmacies
        ORDER BY name
    `

	var pharmacies []domain.Pharmacy
	if err := sqlx.SelectContext(ctx, r.db, &pharmacies, query); err != nil {
		return nil, fmt.Errorf("failed to fetch pharmacies: %w", err)
	}
	return pharmacies, nil
}

func (r *catalogRepository) SearchProducts(ctx context.Context, search string, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT code_13_ref, name,
               COALESCE(laboratory, '') AS laboratory,
               COALESCE(universe, '') AS universe,
               COALESCE(category, '') AS category,
               COALESCE(family, '') AS family,
               COALESCE(sub_family, '') AS sub_family,
               COALESCE(range_name, '') AS range_name,
               COALESCE(current_stock, 0) AS current_stock,
               COALESCE(tva_percentage, 0) AS tva_percentage
        FROM products
        WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR code_13_ref LIKE $1 || '%')
        ORDER BY name
        LIMIT $2 OFFSET $3
    `

	var products []domain.Product
	if err := sqlx.SelectContext(ctx, r.db, &products, query, strings.TrimSpace(search), limit, offset); err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (r *catalogRepository) GetLaboratories(ctx context.Context) ([]string, error) {
	query := `
        SELECT DISTINCT laboratory
        FROM products
        WHERE laboratory IS NOT NULL AND laboratory <> ''
        ORDER BY laboratory
    `

	var laboratories []string
	if err := sqlx.SelectContext(ctx, r.db, &laboratories, query); err != nil {
		return nil, fmt.Errorf("failed to fetch laboratories: %w", err)
	}
	return laboratories, nil
}

func (r *catalogRepository) GetSegmentValues(ctx context.Context, segmentType string) ([]string, error) {
	column := segmentColumn(segmentType)

	query := fmt.Sprintf(`
        SELECT DISTINCT %[1]s
        FROM products
        WHERE %[1]s IS NOT NULL AND %[1]s <> ''
        ORDER BY %[1]s
    `, column)

	var values []string
	if err := sqlx.SelectContext(ctx, r.db, &values, query); err != nil {
		return nil, fmt.Errorf("failed to fetch segment values: %w", err)
	}
	return values, nil
}

func (r *catalogRepository) ExpandLaboratories(ctx context.Context, laboratories []string) ([]string, error) {
	if laboratories == nil {
		return nil, nil
	}
	cleaned := make([]string, 0, len(laboratories))
	for _, lab := range laboratories {
		if lab = strings.TrimSpace(lab); lab != "" {
			cleaned = append(cleaned, lab)
		}
	}
	if len(cleaned) == 0 {
		return []string{}, nil
	}

	query, args, err := sqlx.In(`SELECT code_13_ref FROM products WHERE laboratory IN (?)`, cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to build laboratory expansion query: %w", err)
	}
	query = r.db.Rebind(query)

	codes := []string{}
	if err := sqlx.SelectContext(ctx, r.db, &codes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to expand laboratories: %w", err)
	}
	return codes, nil
}

func (r *catalogRepository) ExpandSegments(ctx context.Context, segments []domain.SegmentRef) ([]string, error) {
	if segments == nil {
		return nil, nil
	}

	codes := []string{}
	seen := make(map[string]struct{})
	for _, seg := range segments {
		if strings.TrimSpace(seg.Value) == "" {
			continue
		}
		column := segmentColumn(seg.Type)

		query := fmt.Sprintf(`SELECT code_13_ref FROM products WHERE %s = $1`, column)
		var segmentCodes []string
		if err := sqlx.SelectContext(ctx, r.db, &segmentCodes, query, seg.Value); err != nil {
			return nil, fmt.Errorf("failed to expand segment %s=%s: %w", seg.Type, seg.Value, err)
		}
		for _, code := range segmentCodes {
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	return codes, nil
}

package postgres

import (
	"fmt"
	"strings"

	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// buildScopeClause constructs the SQL filter fragment for a scope.
// pharmacyColumn and productColumn are the qualified columns the IN lists
// apply to; an empty column disables that dimension for the query. An
// empty scope dimension produces no clause, so an unfiltered scope
// degrades to the unfiltered query plan. The fragment starts with " AND "
// and placeholders start at startIndex.
func buildScopeClause(scope domain.Scope, pharmacyColumn, productColumn string, startIndex int) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)
	idx := startIndex

	if pharmacyColumn != "" && scope.HasPharmacyFilter() {
		placeholders := make([]string, len(scope.PharmacyIDs))
		for i, id := range scope.PharmacyIDs {
			placeholders[i] = fmt.Sprintf("$%d", idx)
			args = append(args, id)
			idx++
		}
		clauses = append(clauses, fmt.Sprintf("%s IN (%s)", pharmacyColumn, strings.Join(placeholders, ",")))
	}

	if productColumn != "" && scope.HasProductFilter() {
		placeholders := make([]string, len(scope.ProductCodes))
		for i, code := range scope.ProductCodes {
			placeholders[i] = fmt.Sprintf("$%d", idx)
			args = append(args, code)
			idx++
		}
		clauses = append(clauses, fmt.Sprintf("%s IN (%s)", productColumn, strings.Join(placeholders, ",")))
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " AND " + strings.Join(clauses, " AND "), args
}

// segmentColumns whitelists the grouping dimensions a request may ask for
var segmentColumns = map[string]string{
	"universe":   "universe",
	"category":   "category",
	"family":     "family",
	"sub_family": "sub_family",
	"laboratory": "laboratory",
	"range":      "range_name",
}

// segmentColumn maps a segment type to its products column, defaulting to
// category on unknown input
func segmentColumn(segmentType string) string {
	col, ok := segmentColumns[strings.ToLower(strings.TrimSpace(segmentType))]
	if !ok {
		log.Warn().Str("segment_type", segmentType).Msg("invalid segment type, defaulting to category")
		return "category"
	}
	return col
}

// Package engine implements the sell-in/sell-out aggregation and
// comparison logic: period resolution, scope combination, purchase and
// stock-break aggregation, snapshot price resolution, evolution deltas
// and band classification. It is a pure function of its inputs; every
// data-store concern lives in the repository layer.
package engine

import (
	"strings"

	"github.com/phardev/apodata-backend/internal/domain"
)

// ValidationError marks a request rejected before any data-store call.
// Handlers map it to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ResolvePeriods validates the primary range and the optional comparison
// range. Both primary bounds are required. The comparison pair is lenient:
// when only one bound is supplied, comparison is treated as disabled
// instead of failing the request.
func ResolvePeriods(startDate, endDate, comparisonStartDate, comparisonEndDate string) (domain.Period, *domain.Period, error) {
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)

	if startDate == "" || endDate == "" {
		return domain.Period{}, nil, &ValidationError{Message: "start and end date are required"}
	}

	primary := domain.Period{Start: startDate, End: endDate}

	comparisonStartDate = strings.TrimSpace(comparisonStartDate)
	comparisonEndDate = strings.TrimSpace(comparisonEndDate)
	if comparisonStartDate == "" || comparisonEndDate == "" {
		return primary, nil, nil
	}

	return primary, &domain.Period{Start: comparisonStartDate, End: comparisonEndDate}, nil
}

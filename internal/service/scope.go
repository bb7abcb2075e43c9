package service

import (
	"context"
	"fmt"

	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/phardev/apodata-backend/internal/engine"
	"github.com/phardev/apodata-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// resolveScope expands laboratory and segment selections into product code
// sets and combines them with the explicit codes per the request's filter
// mode. Sources the request never activated stay nil so they do not
// participate in an AND combination.
func resolveScope(ctx context.Context, catalog repository.CatalogRepository, pharmacyIDs, code13refs, laboratories []string, segments []domain.SegmentRef, filterMode string) (domain.Scope, error) {
	var explicit []string
	if len(code13refs) > 0 {
		explicit = code13refs
	}

	var labSelection []string
	if len(laboratories) > 0 {
		labSelection = laboratories
	}
	labCodes, err := catalog.ExpandLaboratories(ctx, labSelection)
	if err != nil {
		return domain.Scope{}, fmt.Errorf("failed to expand laboratory selection: %w", err)
	}

	var segmentSelection []domain.SegmentRef
	if len(segments) > 0 {
		segmentSelection = segments
	}
	segmentCodes, err := catalog.ExpandSegments(ctx, segmentSelection)
	if err != nil {
		return domain.Scope{}, fmt.Errorf("failed to expand segment selection: %w", err)
	}

	mode := engine.ParseCombineMode(filterMode)
	scope := engine.ResolveScope(pharmacyIDs, mode, explicit, labCodes, segmentCodes)

	log.Debug().
		Int("pharmacies", len(scope.PharmacyIDs)).
		Int("codes", len(scope.ProductCodes)).
		Str("mode", string(mode)).
		Msg("scope resolved")

	return scope, nil
}

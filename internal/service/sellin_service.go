package service

import (
	"context"
	"fmt"

	"github.com/phardev/apodata-backend/internal/cache"
	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/phardev/apodata-backend/internal/engine"
	"github.com/phardev/apodata-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type SellinService struct {
	repo    repository.SalesRepository
	catalog repository.CatalogRepository
	cache   cache.SellinSummaryCache
}

func NewSellinService(repo repository.SalesRepository, catalog repository.CatalogRepository, cacheImpl cache.SellinSummaryCache) *SellinService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSellinCache()
	}
	return &SellinService{repo: repo, catalog: catalog, cache: cacheImpl}
}

// GetSummary computes the sell-in totals for the primary period and, when
// a comparison period is requested, runs the identical aggregation against
// the same scope and derives per-metric evolution. The two passes are
// independent and run in parallel; a failure in either fails the whole
// request so partial comparison state never reaches the caller.
func (s *SellinService) GetSummary(ctx context.Context, req domain.SellinRequest) (*domain.SellinSummary, error) {
	period, comparison, err := engine.ResolvePeriods(req.StartDate, req.EndDate, req.ComparisonStartDate, req.ComparisonEndDate)
	if err != nil {
		return nil, err
	}

	if summary, ok, cacheErr := s.cache.GetSummary(ctx, req); cacheErr == nil && ok {
		return summary, nil
	} else if cacheErr != nil {
		log.Warn().Err(cacheErr).Msg("sellin: cache get summary failed")
	}

	scope, err := resolveScope(ctx, s.catalog, req.PharmacyIDs, req.Code13Refs, req.Laboratories, req.Segments, req.FilterMode)
	if err != nil {
		return nil, err
	}

	var (
		current    domain.MetricPeriodResult
		comparable domain.MetricPeriodResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var aggErr error
		current, aggErr = s.aggregatePeriod(gctx, period, scope)
		return aggErr
	})
	if comparison != nil {
		g.Go(func() error {
			var aggErr error
			comparable, aggErr = s.aggregatePeriod(gctx, *comparison, scope)
			return aggErr
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &domain.SellinSummary{
		MetricPeriodResult: current,
		PharmacyIDs:        scope.PharmacyIDs,
	}
	if summary.PharmacyIDs == nil {
		summary.PharmacyIDs = []string{}
	}
	if comparison != nil {
		summary.Comparison = &domain.ComparisonBlock{
			MetricPeriodResult: comparable,
			Evolution:          engine.EvolutionBetween(current, comparable),
		}
	}

	if err := s.cache.SetSummary(ctx, req, summary); err != nil {
		log.Warn().Err(err).Msg("sellin: cache set summary failed")
	}

	return summary, nil
}

func (s *SellinService) aggregatePeriod(ctx context.Context, period domain.Period, scope domain.Scope) (domain.MetricPeriodResult, error) {
	facts, err := s.repo.FetchOrderLineFacts(ctx, period, scope)
	if err != nil {
		return domain.MetricPeriodResult{}, err
	}

	codes := distinctProductCodes(facts)
	snapshots, err := s.repo.FetchSnapshotHistory(ctx, codes)
	if err != nil {
		return domain.MetricPeriodResult{}, err
	}

	result := engine.AggregatePeriod(period, facts, engine.NewPriceBook(snapshots))

	log.Debug().
		Str("start", period.Start).
		Str("end", period.End).
		Int("lines", len(facts)).
		Int("orders", result.TotalOrders).
		Msg("sellin: period aggregated")

	return result, nil
}

func distinctProductCodes(facts []domain.OrderLineFact) []string {
	seen := make(map[string]struct{}, len(facts))
	codes := make([]string, 0, len(facts))
	for _, fact := range facts {
		if _, ok := seen[fact.ProductCode]; ok {
			continue
		}
		seen[fact.ProductCode] = struct{}{}
		codes = append(codes, fact.ProductCode)
	}
	return codes
}

// InvalidateCache drops every memoized sell-in summary, used after seeding
func (s *SellinService) InvalidateCache(ctx context.Context) error {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("failed to invalidate sellin cache: %w", err)
	}
	return nil
}

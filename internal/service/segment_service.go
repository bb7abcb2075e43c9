package service

import (
	"context"
	"sort"

	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/phardev/apodata-backend/internal/engine"
	"github.com/phardev/apodata-backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

type SegmentService struct {
	repo    repository.SalesRepository
	catalog repository.CatalogRepository
}

func NewSegmentService(repo repository.SalesRepository, catalog repository.CatalogRepository) *SegmentService {
	return &SegmentService{repo: repo, catalog: catalog}
}

// GetDistribution returns the sell-out revenue/margin distribution across
// the values of one segment dimension
func (s *SegmentService) GetDistribution(ctx context.Context, req domain.SegmentRequest) ([]domain.SegmentDistributionItem, error) {
	period, _, err := engine.ResolvePeriods(req.StartDate, req.EndDate, "", "")
	if err != nil {
		return nil, err
	}

	scope, err := resolveScope(ctx, s.catalog, req.PharmacyIDs, req.Code13Refs, req.Laboratories, req.Segments, req.FilterMode)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FetchSegmentSales(ctx, period, scope, req.SegmentType)
	if err != nil {
		return nil, err
	}

	items := make([]domain.SegmentDistributionItem, len(rows))
	for i, row := range rows {
		items[i] = domain.SegmentDistributionItem{
			Segment:      row.Segment,
			Revenue:      row.Revenue,
			Margin:       row.Margin,
			Quantity:     row.Quantity,
			ProductCount: row.ProductCount,
		}
		if row.Revenue > 0 {
			items[i].MarginPercent = engine.Round2(row.Margin / row.Revenue * 100)
		}
	}
	return items, nil
}

// GetEvolution compares every segment value between the primary and the
// comparison period. Both periods are required here: without a baseline
// there is nothing to evolve against.
func (s *SegmentService) GetEvolution(ctx context.Context, req domain.SegmentEvolutionRequest) ([]domain.SegmentEvolutionItem, error) {
	period, comparison, err := engine.ResolvePeriods(req.StartDate, req.EndDate, req.ComparisonStartDate, req.ComparisonEndDate)
	if err != nil {
		return nil, err
	}
	if comparison == nil {
		return nil, &engine.ValidationError{Message: "comparison start and end date are required"}
	}

	scope, err := resolveScope(ctx, s.catalog, req.PharmacyIDs, req.Code13Refs, req.Laboratories, req.Segments, req.FilterMode)
	if err != nil {
		return nil, err
	}

	var currentRows, previousRows []domain.SegmentSalesRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var fetchErr error
		currentRows, fetchErr = s.repo.FetchSegmentSales(gctx, period, scope, req.SegmentType)
		return fetchErr
	})
	g.Go(func() error {
		var fetchErr error
		previousRows, fetchErr = s.repo.FetchSegmentSales(gctx, *comparison, scope, req.SegmentType)
		return fetchErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	previous := make(map[string]domain.SegmentSalesRow, len(previousRows))
	for _, row := range previousRows {
		previous[row.Segment] = row
	}

	seen := make(map[string]struct{}, len(currentRows))
	items := make([]domain.SegmentEvolutionItem, 0, len(currentRows))
	for _, row := range currentRows {
		prev := previous[row.Segment]
		seen[row.Segment] = struct{}{}
		items = append(items, buildSegmentEvolution(row.Segment, row, prev))
	}
	// Segments present only in the comparison period still appear, with a
	// zero current value.
	for _, row := range previousRows {
		if _, ok := seen[row.Segment]; ok {
			continue
		}
		items = append(items, buildSegmentEvolution(row.Segment, domain.SegmentSalesRow{Segment: row.Segment}, row))
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].CurrentRevenue > items[j].CurrentRevenue })

	return items, nil
}

func buildSegmentEvolution(segment string, current, previous domain.SegmentSalesRow) domain.SegmentEvolutionItem {
	return domain.SegmentEvolutionItem{
		Segment:          segment,
		CurrentRevenue:   current.Revenue,
		PreviousRevenue:  previous.Revenue,
		RevenueEvolution: engine.Evolve(current.Revenue, previous.Revenue),
		CurrentMargin:    current.Margin,
		PreviousMargin:   previous.Margin,
		MarginEvolution:  engine.Evolve(current.Margin, previous.Margin),
	}
}

// GetPurchasesBySegment returns the sell-in distribution across one
// segment dimension
func (s *SegmentService) GetPurchasesBySegment(ctx context.Context, req domain.SegmentRequest) ([]domain.SegmentPurchaseItem, error) {
	period, _, err := engine.ResolvePeriods(req.StartDate, req.EndDate, "", "")
	if err != nil {
		return nil, err
	}

	scope, err := resolveScope(ctx, s.catalog, req.PharmacyIDs, req.Code13Refs, req.Laboratories, req.Segments, req.FilterMode)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FetchSegmentPurchases(ctx, period, scope, req.SegmentType)
	if err != nil {
		return nil, err
	}

	items := make([]domain.SegmentPurchaseItem, len(rows))
	for i, row := range rows {
		items[i] = domain.SegmentPurchaseItem{
			Segment:          row.Segment,
			OrderedQuantity:  row.OrderedQuantity,
			ReceivedQuantity: row.ReceivedQuantity,
			PurchaseAmount:   row.PurchaseAmount,
		}
	}
	return items, nil
}

// GetStockBySegment returns the current stock position across one segment
// dimension. Stock is a point-in-time figure; the request's period only
// scopes which products are considered, never the stock level itself.
func (s *SegmentService) GetStockBySegment(ctx context.Context, req domain.SegmentRequest) ([]domain.SegmentStockItem, error) {
	scope, err := resolveScope(ctx, s.catalog, req.PharmacyIDs, req.Code13Refs, req.Laboratories, req.Segments, req.FilterMode)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FetchSegmentStock(ctx, scope, req.SegmentType)
	if err != nil {
		return nil, err
	}

	items := make([]domain.SegmentStockItem, len(rows))
	for i, row := range rows {
		items[i] = domain.SegmentStockItem{
			Segment:      row.Segment,
			StockUnits:   row.StockUnits,
			StockValue:   row.StockValue,
			ProductCount: row.ProductCount,
		}
	}
	return items, nil
}

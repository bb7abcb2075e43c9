package service

import (
	"context"
	"time"

	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/phardev/apodata-backend/internal/engine"
	"github.com/phardev/apodata-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

type ClassificationService struct {
	repo    repository.SalesRepository
	catalog repository.CatalogRepository
}

func NewClassificationService(repo repository.SalesRepository, catalog repository.CatalogRepository) *ClassificationService {
	return &ClassificationService{repo: repo, catalog: catalog}
}

// GetMarginClassification buckets every in-scope product by its margin
// percentage. Products without a priced snapshot carry no margin signal
// and are left out of the partition.
func (s *ClassificationService) GetMarginClassification(ctx context.Context, req domain.ClassificationRequest) ([]domain.BandGroup, error) {
	metrics, err := s.fetchMetrics(ctx, req)
	if err != nil {
		return nil, err
	}

	products := make([]domain.ClassifiedProduct, 0, len(metrics))
	for _, m := range metrics {
		priceExclTax := m.RetailPriceWithTax / (1 + m.TVAPercentage/100)
		if priceExclTax <= 0 {
			continue
		}
		marginPct := engine.Round2((priceExclTax - m.WeightedAverageCost) / priceExclTax * 100)
		products = append(products, domain.ClassifiedProduct{
			Code13Ref:  m.Code13Ref,
			Name:       m.Name,
			Laboratory: m.Laboratory,
			Value:      marginPct,
		})
	}

	return engine.GroupByBand(engine.MarginBands, products), nil
}

// GetPriceComparison buckets every in-scope product by how far its retail
// price deviates from its category average
func (s *ClassificationService) GetPriceComparison(ctx context.Context, req domain.ClassificationRequest) ([]domain.BandGroup, error) {
	metrics, err := s.fetchMetrics(ctx, req)
	if err != nil {
		return nil, err
	}

	products := make([]domain.ClassifiedProduct, 0, len(metrics))
	for _, m := range metrics {
		if m.GroupAvgPrice <= 0 || m.RetailPriceWithTax <= 0 {
			continue
		}
		deviationPct := engine.Round2((m.RetailPriceWithTax - m.GroupAvgPrice) / m.GroupAvgPrice * 100)
		products = append(products, domain.ClassifiedProduct{
			Code13Ref:  m.Code13Ref,
			Name:       m.Name,
			Laboratory: m.Laboratory,
			Value:      deviationPct,
		})
	}

	return engine.GroupByBand(engine.PriceDeviationBands, products), nil
}

// GetStockCoverage buckets every in-scope product by its stock coverage in
// months, derived from the sell-out history inside the requested period
func (s *ClassificationService) GetStockCoverage(ctx context.Context, req domain.ClassificationRequest) ([]domain.BandGroup, error) {
	metrics, err := s.fetchMetrics(ctx, req)
	if err != nil {
		return nil, err
	}

	months := periodMonths(req.StartDate, req.EndDate)

	products := make([]domain.ClassifiedProduct, 0, len(metrics))
	for _, m := range metrics {
		avgMonthlySales := float64(m.SoldQuantity) / months
		coverage := engine.Round2(engine.StockCoverageMonths(m.CurrentStock, avgMonthlySales))
		products = append(products, domain.ClassifiedProduct{
			Code13Ref:  m.Code13Ref,
			Name:       m.Name,
			Laboratory: m.Laboratory,
			Value:      coverage,
		})
	}

	return engine.GroupByBand(engine.StockCoverageBands, products), nil
}

func (s *ClassificationService) fetchMetrics(ctx context.Context, req domain.ClassificationRequest) ([]domain.ProductMetric, error) {
	period, _, err := engine.ResolvePeriods(req.StartDate, req.EndDate, "", "")
	if err != nil {
		return nil, err
	}

	scope, err := resolveScope(ctx, s.catalog, req.PharmacyIDs, req.Code13Refs, req.Laboratories, req.Segments, req.FilterMode)
	if err != nil {
		return nil, err
	}

	return s.repo.FetchProductMetrics(ctx, period, scope)
}

// periodMonths converts the period span into months for average monthly
// sales, flooring at one month so short windows do not inflate coverage
func periodMonths(startDate, endDate string) float64 {
	start, startErr := time.Parse("2006-01-02", startDate)
	end, endErr := time.Parse("2006-01-02", endDate)
	if startErr != nil || endErr != nil || end.Before(start) {
		log.Warn().Str("start", startDate).Str("end", endDate).Msg("classification: unparseable period, assuming one month")
		return 1
	}

	days := end.Sub(start).Hours()/24 + 1
	months := days / 30
	if months < 1 {
		return 1
	}
	return months
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/phardev/apodata-backend/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSalesRepo serves canned facts keyed by period start date so the
// primary and comparison passes can return different data
type stubSalesRepo struct {
	factsByStart map[string][]domain.OrderLineFact
	snapshots    []domain.InventorySnapshot
	metrics      []domain.ProductMetric
	salesRows    map[string][]domain.SegmentSalesRow
	purchaseRows []domain.SegmentPurchaseRow
	stockRows    []domain.SegmentStockRow
	factsErr     error
}

func (s *stubSalesRepo) FetchOrderLineFacts(_ context.Context, period domain.Period, _ domain.Scope) ([]domain.OrderLineFact, error) {
	if s.factsErr != nil {
		return nil, s.factsErr
	}
	return s.factsByStart[period.Start], nil
}

func (s *stubSalesRepo) FetchSnapshotHistory(_ context.Context, _ []string) ([]domain.InventorySnapshot, error) {
	return s.snapshots, nil
}

func (s *stubSalesRepo) FetchSegmentSales(_ context.Context, period domain.Period, _ domain.Scope, _ string) ([]domain.SegmentSalesRow, error) {
	return s.salesRows[period.Start], nil
}

func (s *stubSalesRepo) FetchSegmentPurchases(_ context.Context, _ domain.Period, _ domain.Scope, _ string) ([]domain.SegmentPurchaseRow, error) {
	return s.purchaseRows, nil
}

func (s *stubSalesRepo) FetchSegmentStock(_ context.Context, _ domain.Scope, _ string) ([]domain.SegmentStockRow, error) {
	return s.stockRows, nil
}

func (s *stubSalesRepo) FetchProductMetrics(_ context.Context, _ domain.Period, _ domain.Scope) ([]domain.ProductMetric, error) {
	return s.metrics, nil
}

// stubCatalogRepo expands every laboratory/segment selection to a fixed
// code set and honors the nil-in/nil-out contract
type stubCatalogRepo struct {
	labCodes     []string
	segmentCodes []string
}

func (s *stubCatalogRepo) GetPharmacies(context.Context) ([]domain.Pharmacy, error) { return nil, nil }
func (s *stubCatalogRepo) SearchProducts(context.Context, string, int, int) ([]domain.Product, error) {
	return nil, nil
}
func (s *stubCatalogRepo) GetLaboratories(context.Context) ([]string, error)          { return nil, nil }
func (s *stubCatalogRepo) GetSegmentValues(context.Context, string) ([]string, error) { return nil, nil }

func (s *stubCatalogRepo) ExpandLaboratories(_ context.Context, laboratories []string) ([]string, error) {
	if laboratories == nil {
		return nil, nil
	}
	if s.labCodes == nil {
		return []string{}, nil
	}
	return s.labCodes, nil
}

func (s *stubCatalogRepo) ExpandSegments(_ context.Context, segments []domain.SegmentRef) ([]string, error) {
	if segments == nil {
		return nil, nil
	}
	if s.segmentCodes == nil {
		return []string{}, nil
	}
	return s.segmentCodes, nil
}

func TestGetSummaryMissingDatesFailsValidation(t *testing.T) {
	svc := NewSellinService(&stubSalesRepo{}, &stubCatalogRepo{}, nil)

	_, err := svc.GetSummary(context.Background(), domain.SellinRequest{StartDate: "2024-01-01"})
	require.Error(t, err)

	var vErr *engine.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestGetSummaryEmptyScopeReturnsZeroes(t *testing.T) {
	svc := NewSellinService(&stubSalesRepo{}, &stubCatalogRepo{}, nil)

	summary, err := svc.GetSummary(context.Background(), domain.SellinRequest{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})
	require.NoError(t, err)

	assert.Zero(t, summary.TotalPurchaseQuantity)
	assert.Zero(t, summary.TotalOrders)
	assert.Nil(t, summary.ActualDateRange.Min)
	assert.Nil(t, summary.ActualDateRange.Max)
	assert.NotNil(t, summary.PharmacyIDs)
	assert.Empty(t, summary.PharmacyIDs)
	assert.Nil(t, summary.Comparison)
}

func TestGetSummaryWithComparison(t *testing.T) {
	repo := &stubSalesRepo{
		factsByStart: map[string][]domain.OrderLineFact{
			"2024-01-01": {
				{OrderID: "o1", ProductCode: "111", SentDate: "2024-01-05", OrderedQuantity: 100, BonusQuantity: 10, ReceivedQuantity: 90},
			},
			"2023-01-01": {
				{OrderID: "p1", ProductCode: "111", SentDate: "2023-01-05", OrderedQuantity: 50, ReceivedQuantity: 50},
			},
		},
		snapshots: []domain.InventorySnapshot{
			{ProductCode: "111", Date: "2024-01-01", WeightedAverageCost: 3.00, RetailPriceWithTax: 5.00},
		},
	}
	svc := NewSellinService(repo, &stubCatalogRepo{}, nil)

	summary, err := svc.GetSummary(context.Background(), domain.SellinRequest{
		StartDate:           "2024-01-01",
		EndDate:             "2024-01-31",
		ComparisonStartDate: "2023-01-01",
		ComparisonEndDate:   "2023-01-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 90, summary.TotalPurchaseQuantity)
	require.NotNil(t, summary.Comparison)
	assert.Equal(t, 50, summary.Comparison.TotalPurchaseQuantity)

	evo, ok := summary.Comparison.Evolution["purchaseQuantity"]
	require.True(t, ok)
	assert.Equal(t, 40.0, evo.Absolute)
	assert.Equal(t, 80.0, evo.Percentage)
}

func TestGetSummaryPartialComparisonDatesDisableComparison(t *testing.T) {
	svc := NewSellinService(&stubSalesRepo{}, &stubCatalogRepo{}, nil)

	summary, err := svc.GetSummary(context.Background(), domain.SellinRequest{
		StartDate:           "2024-01-01",
		EndDate:             "2024-01-31",
		ComparisonStartDate: "2023-01-01",
	})
	require.NoError(t, err)
	assert.Nil(t, summary.Comparison)
}

func TestGetSummaryRepositoryErrorPropagates(t *testing.T) {
	repo := &stubSalesRepo{factsErr: errors.New("connection reset")}
	svc := NewSellinService(repo, &stubCatalogRepo{}, nil)

	_, err := svc.GetSummary(context.Background(), domain.SellinRequest{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})
	assert.Error(t, err)
}

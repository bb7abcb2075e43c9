package service

import (
	"context"
	"testing"

	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/phardev/apodata-backend/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDistributionComputesMarginPercent(t *testing.T) {
	repo := &stubSalesRepo{
		salesRows: map[string][]domain.SegmentSalesRow{
			"2024-01-01": {
				{Segment: "DERMO", Revenue: 1000, Margin: 250, Quantity: 80, ProductCount: 12},
				{Segment: "HYGIENE", Revenue: 0, Margin: 0, Quantity: 0, ProductCount: 3},
			},
		},
	}
	svc := NewSegmentService(repo, &stubCatalogRepo{})

	items, err := svc.GetDistribution(context.Background(), domain.SegmentRequest{
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-31",
		SegmentType: "category",
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "DERMO", items[0].Segment)
	assert.Equal(t, 25.0, items[0].MarginPercent)
	// zero revenue never divides
	assert.Zero(t, items[1].MarginPercent)
}

func TestGetEvolutionRequiresBothPeriods(t *testing.T) {
	svc := NewSegmentService(&stubSalesRepo{}, &stubCatalogRepo{})

	_, err := svc.GetEvolution(context.Background(), domain.SegmentEvolutionRequest{
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-31",
		SegmentType: "category",
	})
	require.Error(t, err)

	var vErr *engine.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "comparison start and end date are required", vErr.Message)
}

func TestGetEvolutionZipsBothPeriods(t *testing.T) {
	repo := &stubSalesRepo{
		salesRows: map[string][]domain.SegmentSalesRow{
			"2024-01-01": {
				{Segment: "DERMO", Revenue: 1200, Margin: 300},
				{Segment: "NEW", Revenue: 100, Margin: 20},
			},
			"2023-01-01": {
				{Segment: "DERMO", Revenue: 1000, Margin: 250},
				{Segment: "GONE", Revenue: 400, Margin: 80},
			},
		},
	}
	svc := NewSegmentService(repo, &stubCatalogRepo{})

	items, err := svc.GetEvolution(context.Background(), domain.SegmentEvolutionRequest{
		StartDate:           "2024-01-01",
		EndDate:             "2024-01-31",
		ComparisonStartDate: "2023-01-01",
		ComparisonEndDate:   "2023-01-31",
		SegmentType:         "category",
	})
	require.NoError(t, err)
	require.Len(t, items, 3)

	// sorted by current revenue, descending
	assert.Equal(t, "DERMO", items[0].Segment)
	assert.Equal(t, 20.0, items[0].RevenueEvolution.Percentage)

	assert.Equal(t, "NEW", items[1].Segment)
	assert.Zero(t, items[1].PreviousRevenue)
	assert.Zero(t, items[1].RevenueEvolution.Percentage) // zero baseline

	// present only in the comparison period: zero current value
	assert.Equal(t, "GONE", items[2].Segment)
	assert.Zero(t, items[2].CurrentRevenue)
	assert.Equal(t, -400.0, items[2].RevenueEvolution.Absolute)
}

func TestGetPurchasesBySegment(t *testing.T) {
	repo := &stubSalesRepo{
		purchaseRows: []domain.SegmentPurchaseRow{
			{Segment: "DERMO", OrderedQuantity: 160, ReceivedQuantity: 140, PurchaseAmount: 345},
		},
	}
	svc := NewSegmentService(repo, &stubCatalogRepo{})

	items, err := svc.GetPurchasesBySegment(context.Background(), domain.SegmentRequest{
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-31",
		SegmentType: "category",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 160, items[0].OrderedQuantity)
	assert.Equal(t, 140, items[0].ReceivedQuantity)
}

func TestGetStockBySegmentIgnoresPeriod(t *testing.T) {
	repo := &stubSalesRepo{
		stockRows: []domain.SegmentStockRow{
			{Segment: "DERMO", StockUnits: 500, StockValue: 2100.5, ProductCount: 40},
		},
	}
	svc := NewSegmentService(repo, &stubCatalogRepo{})

	// no dates at all: stock is point-in-time
	items, err := svc.GetStockBySegment(context.Background(), domain.SegmentRequest{SegmentType: "category"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 500, items[0].StockUnits)
	assert.Equal(t, 2100.5, items[0].StockValue)
}

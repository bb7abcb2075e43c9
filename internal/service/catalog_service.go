package service

import (
	"context"

	"github.com/phardev/apodata-backend/internal/domain"
	"github.com/phardev/apodata-backend/internal/repository"
)

type CatalogService struct {
	catalog repository.CatalogRepository
}

func NewCatalogService(catalog repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// GetPharmacies returns every pharmacy for the sidebar filter
func (s *CatalogService) GetPharmacies(ctx context.Context) ([]domain.Pharmacy, error) {
	return s.catalog.GetPharmacies(ctx)
}

// SearchProducts returns products matching the optional search term with
// pagination, for the filter combobox
func (s *CatalogService) SearchProducts(ctx context.Context, search string, limit, offset int) ([]domain.Product, error) {
	return s.catalog.SearchProducts(ctx, search, limit, offset)
}

// GetLaboratories returns every distinct laboratory name
func (s *CatalogService) GetLaboratories(ctx context.Context) ([]string, error) {
	return s.catalog.GetLaboratories(ctx)
}

// GetSegmentValues returns the distinct values of one segment dimension
func (s *CatalogService) GetSegmentValues(ctx context.Context, segmentType string) ([]string, error) {
	return s.catalog.GetSegmentValues(ctx, segmentType)
}

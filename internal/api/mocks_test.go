package api

import (
	"context"

	"interior-catalog-service/internal/catalog"
	"interior-catalog-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockCatalogStorer is a mock implementation of store.CatalogStorer
type MockCatalogStorer struct {
	mock.Mock
}

func (m *MockCatalogStorer) ListDoors(ctx context.Context, filter catalog.DoorFilter) ([]domain.Door, error) {
	args := m.Called(ctx, filter)
	var doors []domain.Door
	if arg0 := args.Get(0); arg0 != nil {
		doors = arg0.([]domain.Door)
	}
	return doors, args.Error(1)
}

func (m *MockCatalogStorer) ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	var products []domain.Product
	if arg0 := args.Get(0); arg0 != nil {
		products = arg0.([]domain.Product)
	}
	return products, args.Error(1)
}

// MockFilterStorer is a mock implementation of store.FilterStorer
type MockFilterStorer struct {
	mock.Mock
}

func (m *MockFilterStorer) SaveFilter(ctx context.Context, filter *domain.SavedFilter) error {
	args := m.Called(ctx, filter)
	return args.Error(0)
}

func (m *MockFilterStorer) ListFilters(ctx context.Context, userID int64) ([]domain.SavedFilter, error) {
	args := m.Called(ctx, userID)
	var filters []domain.SavedFilter
	if arg0 := args.Get(0); arg0 != nil {
		filters = arg0.([]domain.SavedFilter)
	}
	return filters, args.Error(1)
}

// Helper function to get a pointer to a literal.
func PtrTo[T any](v T) *T {
	return &v
}

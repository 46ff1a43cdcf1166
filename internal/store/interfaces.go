package store

import (
	"context"

	"interior-catalog-service/internal/catalog"
	"interior-catalog-service/internal/domain"
)

// CatalogStorer defines the read queries over the product catalog.
type CatalogStorer interface {
	ListDoors(ctx context.Context, filter catalog.DoorFilter) ([]domain.Door, error)
	ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]domain.Product, error) // Fails with catalog.ErrUnknownCategory before querying
}

// FilterStorer defines persistence of user saved filters.
// Saved filters are create-only: there is no update or delete operation.
type FilterStorer interface {
	SaveFilter(ctx context.Context, filter *domain.SavedFilter) error
	ListFilters(ctx context.Context, userID int64) ([]domain.SavedFilter, error)
}

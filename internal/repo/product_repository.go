package repo

import (
	"context"
	"errors"

	"github.com/klassico/storefront/internal/models"
)

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicatedSlug is returned when a slug is already taken by another record.
	ErrDuplicatedSlug = errors.New("slug already in use")
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	GetBySlug(ctx context.Context, slug string) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Patch(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error)
	Delete(ctx context.Context, id string) error
	Filter(ctx context.Context, filter ProductFilter) ([]models.Product, int, error)
}

package repo

import (
	"context"
	"errors"

	"github.com/klassico/storefront/internal/models"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository interface {
	Create(ctx context.Context, category models.Category) (models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (models.Category, error)
	GetBySlug(ctx context.Context, slug string) (models.Category, error)
}

package repo

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klassico/storefront/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
	}
}

func cloneProduct(p models.Product) models.Product {
	p.Tags = append([]string{}, p.Tags...)
	if p.ImageURL != nil {
		url := *p.ImageURL
		p.ImageURL = &url
	}
	return p
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Query != "" {
		q := strings.ToLower(pf.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if pf.CategoryID != "" && p.CategoryID != pf.CategoryID {
		return false
	}
	if pf.Tag != "" && !slices.Contains(p.Tags, pf.Tag) {
		return false
	}
	if pf.Featured != nil && p.Featured != *pf.Featured {
		return false
	}
	if pf.InStock != nil && p.InStock != *pf.InStock {
		return false
	}
	if pf.MinPrice != nil && p.Price.LessThan(*pf.MinPrice) {
		return false
	}
	if pf.MaxPrice != nil && p.Price.GreaterThan(*pf.MaxPrice) {
		return false
	}
	return true
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func (r *InMemoryProductRepository) Filter(_ context.Context, pf ProductFilter) ([]models.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.Product{}
	for _, p := range r.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, cloneProduct(p))
		}
	}

	start := 0
	if pf.Offset != nil {
		start = clamp(*pf.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if pf.Limit != nil && *pf.Limit > 0 {
		end = clamp(start+*pf.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

func (r *InMemoryProductRepository) slugTaken(slug, exceptID string) bool {
	for _, p := range r.products {
		if p.Slug == slug && p.ID != exceptID {
			return true
		}
	}
	return false
}

// Create adds a new product to the repository and assigns its id.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTaken(product.Slug, "") {
		return models.Product{}, ErrDuplicatedSlug
	}
	now := time.Now().UTC()
	product.ID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now
	product = cloneProduct(product)
	r.products = append(r.products, product)
	return cloneProduct(product), nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return cloneProduct(p), nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) GetBySlug(_ context.Context, slug string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Slug == slug {
			return cloneProduct(p), nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update replaces an existing product, keeping its creation time.
func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID != product.ID {
			continue
		}
		if r.slugTaken(product.Slug, product.ID) {
			return models.Product{}, ErrDuplicatedSlug
		}
		product.CreatedAt = p.CreatedAt
		product.UpdatedAt = time.Now().UTC()
		r.products[i] = cloneProduct(product)
		return cloneProduct(product), nil
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Patch(_ context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID != id {
			continue
		}
		updated := patch.Apply(p)
		if patch.Slug != nil && r.slugTaken(updated.Slug, id) {
			return models.Product{}, ErrDuplicatedSlug
		}
		updated.UpdatedAt = time.Now().UTC()
		r.products[i] = cloneProduct(updated)
		return cloneProduct(updated), nil
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// All returns every stored product in insertion order.
func (r *InMemoryProductRepository) All() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	for i, p := range r.products {
		out[i] = cloneProduct(p)
	}
	return out
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}

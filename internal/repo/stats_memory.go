package repo

import (
	"context"
)

// InMemoryStatsRepository computes catalog stats from the in-memory repositories.
type InMemoryStatsRepository struct {
	products   *InMemoryProductRepository
	categories *InMemoryCategoryRepository
}

func NewInMemoryStatsRepository(products *InMemoryProductRepository, categories *InMemoryCategoryRepository) *InMemoryStatsRepository {
	return &InMemoryStatsRepository{products: products, categories: categories}
}

func (s *InMemoryStatsRepository) GetCatalogStats(ctx context.Context) (CatalogStats, error) {
	stats := CatalogStats{ByCategory: []CategoryCount{}}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return stats, err
	}
	counts := make(map[string]int, len(categories))

	for _, p := range s.products.All() {
		stats.TotalProducts++
		if p.Featured {
			stats.FeaturedCount++
		}
		if !p.InStock {
			stats.OutOfStockCount++
		}
		counts[p.CategoryID]++
	}

	for _, c := range categories {
		stats.ByCategory = append(stats.ByCategory, CategoryCount{CategoryID: c.ID, Name: c.Name, Products: counts[c.ID]})
	}
	return stats, nil
}

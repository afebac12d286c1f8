package repo

import "context"

type CategoryCount struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Products   int    `json:"products"`
}

// CatalogStats summarizes the catalog for the admin dashboard.
type CatalogStats struct {
	TotalProducts   int             `json:"total_products"`
	FeaturedCount   int             `json:"featured_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
	ByCategory      []CategoryCount `json:"by_category"`
}

type StatsRepository interface {
	GetCatalogStats(ctx context.Context) (CatalogStats, error)
}

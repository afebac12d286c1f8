package repo

import (
	"context"
	"database/sql"
)

type PostgresStatsRepository struct {
	db *sql.DB
}

func NewPostgresStatsRepository(db *sql.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) GetCatalogStats(ctx context.Context) (CatalogStats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	stats := CatalogStats{ByCategory: []CategoryCount{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE featured),
		       COUNT(*) FILTER (WHERE NOT in_stock)
		FROM products
	`).Scan(&stats.TotalProducts, &stats.FeaturedCount, &stats.OutOfStockCount)
	if err != nil {
		return stats, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name
	`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.CategoryID, &cc.Name, &cc.Products); err != nil {
			return stats, err
		}
		stats.ByCategory = append(stats.ByCategory, cc)
	}
	return stats, rows.Err()
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/klassico/storefront/internal/metrics"
	"github.com/klassico/storefront/internal/models"
	"github.com/lib/pq"
)

var productColumns = []string{
	"id", "name", "slug", "description", "price", "category_id",
	"in_stock", "featured", "tags", "image_url", "created_at", "updated_at",
}

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CategoryID,
		&p.InStock, &p.Featured, pq.Array(&p.Tags), &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, err
}

func translateWriteError(err error) error {
	switch pgErrorCode(err) {
	case uniqueViolation:
		return ErrDuplicatedSlug
	case foreignKeyViolation:
		return ErrCategoryNotFound
	}
	return err
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	defer metrics.TrackDBOperation("product_create")(time.Now())
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Tags == nil {
		p.Tags = []string{}
	}

	query, args, err := psql.Insert("products").
		Columns(productColumns...).
		Values(p.ID, p.Name, p.Slug, p.Description, p.Price, p.CategoryID,
			p.InStock, p.Featured, pq.Array(p.Tags), p.ImageURL, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return models.Product{}, fmt.Errorf("building insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return models.Product{}, translateWriteError(err)
	}
	return p, nil
}

func (r *PostgresProductRepository) getOne(ctx context.Context, where sq.Sqlizer) (models.Product, error) {
	defer metrics.TrackDBOperation("product_get")(time.Now())
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query, args, err := psql.Select(productColumns...).From("products").Where(where).ToSql()
	if err != nil {
		return models.Product{}, fmt.Errorf("building select: %w", err)
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	if uuid.Validate(id) != nil {
		return models.Product{}, ErrProductNotFound
	}
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *PostgresProductRepository) GetBySlug(ctx context.Context, slug string) (models.Product, error) {
	return r.getOne(ctx, sq.Eq{"slug": slug})
}

func (r *PostgresProductRepository) update(ctx context.Context, id string, values map[string]any) (models.Product, error) {
	defer metrics.TrackDBOperation("product_update")(time.Now())
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	values["updated_at"] = time.Now().UTC()
	query, args, err := psql.Update("products").
		SetMap(values).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(productColumns)).
		ToSql()
	if err != nil {
		return models.Product{}, fmt.Errorf("building update: %w", err)
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, translateWriteError(err)
	}
	return p, nil
}

// Update replaces every writable column of the product.
func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	if uuid.Validate(p.ID) != nil {
		return models.Product{}, ErrProductNotFound
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return r.update(ctx, p.ID, map[string]any{
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"price":       p.Price,
		"category_id": p.CategoryID,
		"in_stock":    p.InStock,
		"featured":    p.Featured,
		"tags":        pq.Array(tags),
		"image_url":   p.ImageURL,
	})
}

// Patch writes only the fields set on patch.
func (r *PostgresProductRepository) Patch(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	if uuid.Validate(id) != nil {
		return models.Product{}, ErrProductNotFound
	}
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	values := map[string]any{}
	if patch.Name != nil {
		values["name"] = *patch.Name
	}
	if patch.Slug != nil {
		values["slug"] = *patch.Slug
	}
	if patch.Description != nil {
		values["description"] = *patch.Description
	}
	if patch.Price != nil {
		values["price"] = *patch.Price
	}
	if patch.CategoryID != nil {
		values["category_id"] = *patch.CategoryID
	}
	if patch.InStock != nil {
		values["in_stock"] = *patch.InStock
	}
	if patch.Featured != nil {
		values["featured"] = *patch.Featured
	}
	if patch.Tags != nil {
		values["tags"] = pq.Array(*patch.Tags)
	}
	if patch.ImageURL != nil {
		values["image_url"] = *patch.ImageURL
	}
	return r.update(ctx, id, values)
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return ErrProductNotFound
	}
	defer metrics.TrackDBOperation("product_delete")(time.Now())
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query, args, err := psql.Delete("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func filterConditions(pf ProductFilter) sq.And {
	conditions := sq.And{}
	if pf.Query != "" {
		pattern := "%" + pf.Query + "%"
		conditions = append(conditions, sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		})
	}
	if pf.CategoryID != "" {
		conditions = append(conditions, sq.Eq{"category_id": pf.CategoryID})
	}
	if pf.Tag != "" {
		conditions = append(conditions, sq.Expr("? = ANY(tags)", pf.Tag))
	}
	if pf.Featured != nil {
		conditions = append(conditions, sq.Eq{"featured": *pf.Featured})
	}
	if pf.InStock != nil {
		conditions = append(conditions, sq.Eq{"in_stock": *pf.InStock})
	}
	if pf.MinPrice != nil {
		conditions = append(conditions, sq.GtOrEq{"price": *pf.MinPrice})
	}
	if pf.MaxPrice != nil {
		conditions = append(conditions, sq.LtOrEq{"price": *pf.MaxPrice})
	}
	return conditions
}

func (r *PostgresProductRepository) Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	defer metrics.TrackDBOperation("product_filter")(time.Now())
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	conditions := filterConditions(pf)

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("products").Where(conditions).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building count: %w", err)
	}
	var totalCount int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	builder := psql.Select(productColumns...).From("products").Where(conditions).OrderBy("created_at", "id")
	if pf.Limit != nil && *pf.Limit > 0 {
		builder = builder.Limit(uint64(*pf.Limit))
	}
	if pf.Offset != nil && *pf.Offset > 0 {
		builder = builder.Offset(uint64(*pf.Offset))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building filter: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, totalCount, rows.Err()
}

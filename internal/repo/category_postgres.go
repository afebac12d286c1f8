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
)

type PostgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, c models.Category) (models.Category, error) {
	defer metrics.TrackDBOperation("category_create")(time.Now())
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	c.ID = uuid.NewString()
	query, args, err := psql.Insert("categories").
		Columns("id", "name", "slug").
		Values(c.ID, c.Name, c.Slug).
		ToSql()
	if err != nil {
		return models.Category{}, fmt.Errorf("building insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pgErrorCode(err) == uniqueViolation {
			return models.Category{}, ErrDuplicatedSlug
		}
		return models.Category{}, err
	}
	return c, nil
}

func (r *PostgresCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	defer metrics.TrackDBOperation("category_list")(time.Now())
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query, args, err := psql.Select("id", "name", "slug").From("categories").OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresCategoryRepository) getOne(ctx context.Context, where sq.Sqlizer) (models.Category, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query, args, err := psql.Select("id", "name", "slug").From("categories").Where(where).ToSql()
	if err != nil {
		return models.Category{}, fmt.Errorf("building select: %w", err)
	}
	var c models.Category
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrCategoryNotFound
	}
	return c, err
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (models.Category, error) {
	if uuid.Validate(id) != nil {
		return models.Category{}, ErrCategoryNotFound
	}
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *PostgresCategoryRepository) GetBySlug(ctx context.Context, slug string) (models.Category, error) {
	return r.getOne(ctx, sq.Eq{"slug": slug})
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"barriotips/api/internal/models"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, category models.Category) error {
	const query = `
		INSERT INTO categories (id, category_name, category_icon, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query, category.ID, category.CategoryName, category.CategoryIcon)
	return err
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	const query = `
		SELECT id, category_name, category_icon, created_at, updated_at
		FROM categories ORDER BY category_name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(
			&category.ID,
			&category.CategoryName,
			&category.CategoryIcon,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (models.Category, error) {
	const query = `
		SELECT id, category_name, category_icon, created_at, updated_at
		FROM categories WHERE id = $1
	`

	var category models.Category
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.CategoryName,
		&category.CategoryIcon,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Category{}, ErrCategoryNotFound
		}
		return models.Category{}, err
	}
	return category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category models.Category) error {
	const query = `
		UPDATE categories SET category_name = $2, category_icon = $3, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, category.ID, category.CategoryName, category.CategoryIcon)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM categories WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"barriotips/api/internal/models"
)

var ErrBarrioNotFound = errors.New("barrio not found")

type BarrioRepository struct {
	pool *pgxpool.Pool
}

func NewBarrioRepository(pool *pgxpool.Pool) *BarrioRepository {
	return &BarrioRepository{pool: pool}
}

func (r *BarrioRepository) Create(ctx context.Context, barrio models.Barrio) error {
	const query = `
		INSERT INTO barrios (id, barrio_name, map_polygon, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query, barrio.ID, barrio.BarrioName, barrio.MapPolygon)
	return err
}

func (r *BarrioRepository) List(ctx context.Context) ([]models.Barrio, error) {
	const query = `
		SELECT id, barrio_name, map_polygon, created_at, updated_at
		FROM barrios ORDER BY barrio_name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	barrios := make([]models.Barrio, 0)
	for rows.Next() {
		var barrio models.Barrio
		if err := rows.Scan(
			&barrio.ID,
			&barrio.BarrioName,
			&barrio.MapPolygon,
			&barrio.CreatedAt,
			&barrio.UpdatedAt,
		); err != nil {
			return nil, err
		}
		barrios = append(barrios, barrio)
	}
	return barrios, rows.Err()
}

func (r *BarrioRepository) GetByID(ctx context.Context, id string) (models.Barrio, error) {
	const query = `
		SELECT id, barrio_name, map_polygon, created_at, updated_at
		FROM barrios WHERE id = $1
	`

	var barrio models.Barrio
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&barrio.ID,
		&barrio.BarrioName,
		&barrio.MapPolygon,
		&barrio.CreatedAt,
		&barrio.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Barrio{}, ErrBarrioNotFound
		}
		return models.Barrio{}, err
	}
	return barrio, nil
}

func (r *BarrioRepository) Update(ctx context.Context, barrio models.Barrio) error {
	const query = `
		UPDATE barrios SET barrio_name = $2, map_polygon = $3, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, barrio.ID, barrio.BarrioName, barrio.MapPolygon)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBarrioNotFound
	}
	return nil
}

func (r *BarrioRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM barrios WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBarrioNotFound
	}
	return nil
}

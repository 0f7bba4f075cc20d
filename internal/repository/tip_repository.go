package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"barriotips/api/internal/models"
)

var ErrTipNotFound = errors.New("tip not found")

const tipColumns = `
	id, title, intro_text, body_text, image_url, street, street_no, zip, city,
	telephone, map_place_id, google_maps_uri, map_lat, map_lng,
	category_id, barrio_id, author_id, created_at, updated_at
`

type TipRepository struct {
	pool *pgxpool.Pool
}

func NewTipRepository(pool *pgxpool.Pool) *TipRepository {
	return &TipRepository{pool: pool}
}

func (r *TipRepository) Create(ctx context.Context, tip models.Tip) error {
	const query = `
		INSERT INTO tips (
			id, title, intro_text, body_text, image_url, street, street_no, zip, city,
			telephone, map_place_id, google_maps_uri, map_lat, map_lng,
			category_id, barrio_id, author_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14,
			$15, $16, $17, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		tip.ID,
		tip.Title,
		tip.IntroText,
		tip.BodyText,
		tip.ImageURL,
		tip.Street,
		tip.StreetNo,
		tip.Zip,
		tip.City,
		tip.Telephone,
		tip.MapPlaceID,
		tip.GoogleMapsURI,
		tip.MapLat,
		tip.MapLng,
		tip.CategoryID,
		tip.BarrioID,
		tip.AuthorID,
	)
	return err
}

// TipFilter narrows List by category and/or barrio id membership. Empty
// slices mean no restriction on that axis.
type TipFilter struct {
	CategoryIDs []string
	BarrioIDs   []string
}

func (r *TipRepository) List(ctx context.Context, filter TipFilter) ([]models.Tip, error) {
	query := `SELECT ` + tipColumns + ` FROM tips`
	args := make([]any, 0, 2)
	where := ""

	if len(filter.CategoryIDs) > 0 {
		args = append(args, filter.CategoryIDs)
		where = fmt.Sprintf(" WHERE category_id = ANY($%d)", len(args))
	}
	if len(filter.BarrioIDs) > 0 {
		args = append(args, filter.BarrioIDs)
		if where == "" {
			where = fmt.Sprintf(" WHERE barrio_id = ANY($%d)", len(args))
		} else {
			where += fmt.Sprintf(" AND barrio_id = ANY($%d)", len(args))
		}
	}

	rows, err := r.pool.Query(ctx, query+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tips := make([]models.Tip, 0)
	for rows.Next() {
		tip, err := scanTip(rows)
		if err != nil {
			return nil, err
		}
		tips = append(tips, tip)
	}
	return tips, rows.Err()
}

func (r *TipRepository) GetByID(ctx context.Context, id string) (models.Tip, error) {
	query := `SELECT ` + tipColumns + ` FROM tips WHERE id = $1`
	tip, err := scanTip(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Tip{}, ErrTipNotFound
		}
		return models.Tip{}, err
	}
	return tip, nil
}

// ListByIDs returns the tips matching ids, preserving the order of ids.
// Ids with no matching tip are skipped.
func (r *TipRepository) ListByIDs(ctx context.Context, idList []string) ([]models.Tip, error) {
	if len(idList) == 0 {
		return []models.Tip{}, nil
	}

	query := `SELECT ` + tipColumns + ` FROM tips WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, idList)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]models.Tip, len(idList))
	for rows.Next() {
		tip, err := scanTip(rows)
		if err != nil {
			return nil, err
		}
		byID[tip.ID] = tip
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ordered := make([]models.Tip, 0, len(byID))
	for _, id := range idList {
		if tip, ok := byID[id]; ok {
			ordered = append(ordered, tip)
		}
	}
	return ordered, nil
}

func (r *TipRepository) Update(ctx context.Context, tip models.Tip) error {
	const query = `
		UPDATE tips SET
			title = $2, intro_text = $3, body_text = $4, image_url = $5,
			street = $6, street_no = $7, zip = $8, city = $9, telephone = $10,
			map_place_id = $11, google_maps_uri = $12, map_lat = $13, map_lng = $14,
			category_id = $15, barrio_id = $16, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		tip.ID,
		tip.Title,
		tip.IntroText,
		tip.BodyText,
		tip.ImageURL,
		tip.Street,
		tip.StreetNo,
		tip.Zip,
		tip.City,
		tip.Telephone,
		tip.MapPlaceID,
		tip.GoogleMapsURI,
		tip.MapLat,
		tip.MapLng,
		tip.CategoryID,
		tip.BarrioID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTipNotFound
	}
	return nil
}

func (r *TipRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tips WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTipNotFound
	}
	return nil
}

func scanTip(row pgx.Row) (models.Tip, error) {
	var tip models.Tip
	err := row.Scan(
		&tip.ID,
		&tip.Title,
		&tip.IntroText,
		&tip.BodyText,
		&tip.ImageURL,
		&tip.Street,
		&tip.StreetNo,
		&tip.Zip,
		&tip.City,
		&tip.Telephone,
		&tip.MapPlaceID,
		&tip.GoogleMapsURI,
		&tip.MapLat,
		&tip.MapLng,
		&tip.CategoryID,
		&tip.BarrioID,
		&tip.AuthorID,
		&tip.CreatedAt,
		&tip.UpdatedAt,
	)
	return tip, err
}

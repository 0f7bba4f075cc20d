package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"barriotips/api/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name, role, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Role,
	)
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at
		FROM users WHERE email = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	const query = `
		SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at
		FROM users WHERE id = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash []byte) error {
	const query = `
		UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role models.UserRole) error {
	const query = `
		UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, role)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListFavourites returns the user's favourite tip ids in insertion order.
func (r *UserRepository) ListFavourites(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT tip_id FROM user_favourites
		WHERE user_id = $1
		ORDER BY created_at, tip_id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favourites := make([]string, 0)
	for rows.Next() {
		var tipID string
		if err := rows.Scan(&tipID); err != nil {
			return nil, err
		}
		favourites = append(favourites, tipID)
	}
	return favourites, rows.Err()
}

// AddFavourite inserts a favourite as a single atomic set-add: the primary
// key on (user_id, tip_id) makes concurrent adds converge on one row.
func (r *UserRepository) AddFavourite(ctx context.Context, userID string, tipID string) error {
	const query = `
		INSERT INTO user_favourites (user_id, tip_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, tip_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, userID, tipID)
	return err
}

// RemoveFavourite is the matching atomic set-remove; removing an absent
// entry is a no-op.
func (r *UserRepository) RemoveFavourite(ctx context.Context, userID string, tipID string) error {
	const query = `
		DELETE FROM user_favourites WHERE user_id = $1 AND tip_id = $2
	`
	_, err := r.pool.Exec(ctx, query, userID, tipID)
	return err
}

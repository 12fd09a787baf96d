package exercises

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// RepositoryPort abstracts exercise persistence.
type RepositoryPort interface {
	List(ctx context.Context) ([]Exercise, error)
	Get(ctx context.Context, id uuid.UUID) (*Exercise, error)
	Create(ctx context.Context, ex *Exercise) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository stores exercises in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const exerciseColumns = `id, name, category, video_url, instructions, tags, image`

func (r *Repository) List(ctx context.Context) ([]Exercise, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Exercise
	for rows.Next() {
		var ex Exercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Category, &ex.VideoURL,
			&ex.Instructions, &ex.Tags, &ex.Image); err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Exercise, error) {
	var ex Exercise
	err := r.pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id).
		Scan(&ex.ID, &ex.Name, &ex.Category, &ex.VideoURL,
			&ex.Instructions, &ex.Tags, &ex.Image)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

func (r *Repository) Create(ctx context.Context, ex *Exercise) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO exercises (id, name, category, video_url, instructions, tags, image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ex.ID, ex.Name, ex.Category, ex.VideoURL, ex.Instructions, ex.Tags, ex.Image)
	return err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

package notes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// RepositoryPort abstracts note persistence.
type RepositoryPort interface {
	Create(ctx context.Context, note *Note) error
	ListForClient(ctx context.Context, clientID uuid.UUID) ([]Note, error)
	Update(ctx context.Context, id uuid.UUID, content string) (*Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository stores notes in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, note *Note) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO notes (id, client_id, content, date) VALUES ($1, $2, $3, $4)`,
		note.ID, note.ClientID, note.Content, note.Date)
	return err
}

func (r *Repository) ListForClient(ctx context.Context, clientID uuid.UUID) ([]Note, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, client_id, content, date FROM notes
		 WHERE client_id = $1 ORDER BY date DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		var note Note
		if err := rows.Scan(&note.ID, &note.ClientID, &note.Content, &note.Date); err != nil {
			return nil, err
		}
		out = append(out, note)
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, content string) (*Note, error) {
	var note Note
	err := r.pool.QueryRow(ctx,
		`UPDATE notes SET content = $1 WHERE id = $2
		 RETURNING id, client_id, content, date`, content, id).
		Scan(&note.ID, &note.ClientID, &note.Content, &note.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

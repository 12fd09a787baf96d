package evaluations

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort abstracts evaluation persistence.
type RepositoryPort interface {
	Create(ctx context.Context, eval *Evaluation) error
	ListForClient(ctx context.Context, clientID uuid.UUID) ([]Evaluation, error)
}

// Repository stores evaluations in Postgres. Priority zones are a text
// array, matching the free-form way readings are taken.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, eval *Evaluation) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO evaluations (id, client_id, date, type, priority_zones, focus, notes, file_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		eval.ID, eval.ClientID, eval.Date, eval.Type, eval.PriorityZones,
		eval.Focus, eval.Notes, eval.FileURL)
	return err
}

func (r *Repository) ListForClient(ctx context.Context, clientID uuid.UUID) ([]Evaluation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, client_id, date, type, priority_zones, focus, notes, file_url
		 FROM evaluations WHERE client_id = $1 ORDER BY date DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		var eval Evaluation
		if err := rows.Scan(&eval.ID, &eval.ClientID, &eval.Date, &eval.Type,
			&eval.PriorityZones, &eval.Focus, &eval.Notes, &eval.FileURL); err != nil {
			return nil, err
		}
		out = append(out, eval)
	}
	return out, rows.Err()
}

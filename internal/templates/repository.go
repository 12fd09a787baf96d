package templates

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calibra-app/calibra/internal/exercises"
	"github.com/calibra-app/calibra/internal/platform/db"
	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// RepositoryPort abstracts template persistence.
type RepositoryPort interface {
	List(ctx context.Context) ([]Template, error)
	Get(ctx context.Context, id uuid.UUID) (*Template, error)
	Create(ctx context.Context, tpl *Template) error
	Update(ctx context.Context, tpl *Template) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository stores templates and their lines in Postgres. Lines live in
// template_exercises with an explicit position so order survives round trips.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) List(ctx context.Context) ([]Template, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, created_at FROM templates ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Template
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var tpl Template
		if err := rows.Scan(&tpl.ID, &tpl.Title, &tpl.Description, &tpl.CreatedAt); err != nil {
			return nil, err
		}
		tpl.Lines = []Line{}
		index[tpl.ID] = len(out)
		out = append(out, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	lineRows, err := r.pool.Query(ctx,
		`SELECT te.template_id, te.exercise_id, te.sets, te.reps, te.rest, te.notes,
		        e.id, e.name, e.category, e.video_url, e.instructions, e.tags, e.image
		 FROM template_exercises te
		 JOIN exercises e ON e.id = te.exercise_id
		 ORDER BY te.template_id, te.position ASC`)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var templateID uuid.UUID
		line, err := scanLine(lineRows, &templateID)
		if err != nil {
			return nil, err
		}
		if i, ok := index[templateID]; ok {
			out[i].Lines = append(out[i].Lines, line)
		}
	}
	return out, lineRows.Err()
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Template, error) {
	var tpl Template
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, created_at FROM templates WHERE id = $1`, id).
		Scan(&tpl.ID, &tpl.Title, &tpl.Description, &tpl.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT te.template_id, te.exercise_id, te.sets, te.reps, te.rest, te.notes,
		        e.id, e.name, e.category, e.video_url, e.instructions, e.tags, e.image
		 FROM template_exercises te
		 JOIN exercises e ON e.id = te.exercise_id
		 WHERE te.template_id = $1
		 ORDER BY te.position ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tpl.Lines = []Line{}
	for rows.Next() {
		var templateID uuid.UUID
		line, err := scanLine(rows, &templateID)
		if err != nil {
			return nil, err
		}
		tpl.Lines = append(tpl.Lines, line)
	}
	return &tpl, rows.Err()
}

func (r *Repository) Create(ctx context.Context, tpl *Template) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO templates (id, title, description, created_at)
			 VALUES ($1, $2, $3, $4)`,
			tpl.ID, tpl.Title, tpl.Description, tpl.CreatedAt)
		if err != nil {
			return err
		}
		return insertLines(ctx, tx, tpl.ID, tpl.Lines)
	})
}

// Update replaces the title, description and the full line set.
func (r *Repository) Update(ctx context.Context, tpl *Template) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE templates SET title = $1, description = $2 WHERE id = $3`,
			tpl.Title, tpl.Description, tpl.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return httpx.ErrNotFound
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM template_exercises WHERE template_id = $1`, tpl.ID); err != nil {
			return err
		}
		return insertLines(ctx, tx, tpl.ID, tpl.Lines)
	})
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func insertLines(ctx context.Context, tx pgx.Tx, templateID uuid.UUID, lines []Line) error {
	for i, line := range lines {
		_, err := tx.Exec(ctx,
			`INSERT INTO template_exercises (template_id, exercise_id, position, sets, reps, rest, notes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			templateID, line.ExerciseID, i, line.Sets, line.Reps, line.Rest, line.Notes)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanLine(rows pgx.Rows, templateID *uuid.UUID) (Line, error) {
	var line Line
	var ex exercises.Exercise
	err := rows.Scan(templateID, &line.ExerciseID, &line.Sets, &line.Reps, &line.Rest, &line.Notes,
		&ex.ID, &ex.Name, &ex.Category, &ex.VideoURL, &ex.Instructions, &ex.Tags, &ex.Image)
	if err != nil {
		return Line{}, err
	}
	line.Exercise = &ex
	return line, nil
}

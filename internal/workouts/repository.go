package workouts

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calibra-app/calibra/internal/exercises"
	"github.com/calibra-app/calibra/internal/platform/db"
	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// RepositoryPort abstracts workout persistence.
type RepositoryPort interface {
	ListForClient(ctx context.Context, clientID uuid.UUID) ([]Workout, error)
	Create(ctx context.Context, workout *Workout) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository stores workouts and their lines in Postgres. Lines live in
// workout_exercises with an explicit position, same layout as template lines.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) ListForClient(ctx context.Context, clientID uuid.UUID) ([]Workout, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, client_id, title, date_assigned, status, sort_order
		 FROM workouts WHERE client_id = $1
		 ORDER BY date_assigned DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Workout
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var wk Workout
		if err := rows.Scan(&wk.ID, &wk.ClientID, &wk.Title, &wk.DateAssigned,
			&wk.Status, &wk.Order); err != nil {
			return nil, err
		}
		wk.Lines = []Line{}
		index[wk.ID] = len(out)
		out = append(out, wk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	lineRows, err := r.pool.Query(ctx,
		`SELECT we.workout_id, we.exercise_id, we.sets, we.reps, we.rest, we.notes,
		        e.id, e.name, e.category, e.video_url, e.instructions, e.tags, e.image
		 FROM workout_exercises we
		 JOIN exercises e ON e.id = we.exercise_id
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE w.client_id = $1
		 ORDER BY we.workout_id, we.position ASC`, clientID)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var workoutID uuid.UUID
		var line Line
		var ex exercises.Exercise
		err := lineRows.Scan(&workoutID, &line.ExerciseID, &line.Sets, &line.Reps,
			&line.Rest, &line.Notes,
			&ex.ID, &ex.Name, &ex.Category, &ex.VideoURL, &ex.Instructions, &ex.Tags, &ex.Image)
		if err != nil {
			return nil, err
		}
		line.Exercise = &ex
		if i, ok := index[workoutID]; ok {
			out[i].Lines = append(out[i].Lines, line)
		}
	}
	return out, lineRows.Err()
}

func (r *Repository) Create(ctx context.Context, workout *Workout) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO workouts (id, client_id, title, date_assigned, status, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			workout.ID, workout.ClientID, workout.Title, workout.DateAssigned,
			workout.Status, workout.Order)
		if err != nil {
			return err
		}
		for i, line := range workout.Lines {
			_, err := tx.Exec(ctx,
				`INSERT INTO workout_exercises (workout_id, exercise_id, position, sets, reps, rest, notes)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				workout.ID, line.ExerciseID, i, line.Sets, line.Reps, line.Rest, line.Notes)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

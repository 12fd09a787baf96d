package feedback

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calibra-app/calibra/internal/platform/db"
)

// RepositoryPort abstracts feedback persistence.
type RepositoryPort interface {
	Create(ctx context.Context, fb *Feedback) error
	ListForClient(ctx context.Context, clientID uuid.UUID) ([]Feedback, error)
}

// Repository stores feedback in Postgres. The per-exercise detail lives in
// feedback_exercises.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, fb *Feedback) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO feedback (id, client_id, workout_id, date, rpe, comments)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			fb.ID, fb.ClientID, fb.WorkoutID, fb.Date, fb.RPE, fb.Comments)
		if err != nil {
			return err
		}
		for i, entry := range fb.Exercises {
			_, err := tx.Exec(ctx,
				`INSERT INTO feedback_exercises (feedback_id, position, exercise_id, exercise_name, weight_used)
				 VALUES ($1, $2, $3, $4, $5)`,
				fb.ID, i, entry.ExerciseID, entry.ExerciseName, entry.WeightUsed)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) ListForClient(ctx context.Context, clientID uuid.UUID) ([]Feedback, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT f.id, f.client_id, f.workout_id, f.date, f.rpe, f.comments,
		        COALESCE(w.title, '')
		 FROM feedback f
		 LEFT JOIN workouts w ON w.id = f.workout_id
		 WHERE f.client_id = $1
		 ORDER BY f.date DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Feedback
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var fb Feedback
		if err := rows.Scan(&fb.ID, &fb.ClientID, &fb.WorkoutID, &fb.Date,
			&fb.RPE, &fb.Comments, &fb.WorkoutTitle); err != nil {
			return nil, err
		}
		fb.Exercises = []ExerciseEntry{}
		index[fb.ID] = len(out)
		out = append(out, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	entryRows, err := r.pool.Query(ctx,
		`SELECT fe.feedback_id, fe.exercise_id, fe.exercise_name, fe.weight_used
		 FROM feedback_exercises fe
		 JOIN feedback f ON f.id = fe.feedback_id
		 WHERE f.client_id = $1
		 ORDER BY fe.feedback_id, fe.position ASC`, clientID)
	if err != nil {
		return nil, err
	}
	defer entryRows.Close()

	for entryRows.Next() {
		var feedbackID uuid.UUID
		var entry ExerciseEntry
		if err := entryRows.Scan(&feedbackID, &entry.ExerciseID,
			&entry.ExerciseName, &entry.WeightUsed); err != nil {
			return nil, err
		}
		if i, ok := index[feedbackID]; ok {
			out[i].Exercises = append(out[i].Exercises, entry)
		}
	}
	return out, entryRows.Err()
}

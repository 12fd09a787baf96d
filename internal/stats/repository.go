package stats

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort abstracts the aggregate queries behind the dashboard.
type RepositoryPort interface {
	Overview(ctx context.Context, feedbackSince time.Time) (*Overview, error)
	RecentActivity(ctx context.Context, limit int) (*Activity, error)
}

// Repository runs the dashboard aggregates against Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Overview(ctx context.Context, feedbackSince time.Time) (*Overview, error) {
	var ov Overview
	err := r.pool.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM users WHERE role = 'client'),
		   (SELECT COUNT(*) FROM exercises),
		   (SELECT COUNT(*) FROM workouts),
		   (SELECT COUNT(*) FROM feedback WHERE date >= $1)`,
		feedbackSince).
		Scan(&ov.TotalClients, &ov.TotalExercises, &ov.ActiveWorkouts, &ov.RecentFeedback)
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

func (r *Repository) RecentActivity(ctx context.Context, limit int) (*Activity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT f.id, f.client_id,
		        COALESCE(u.name, ''), COALESCE(u.surname, ''), COALESCE(u.avatar, ''),
		        COALESCE(w.title, ''), f.rpe, f.comments, f.date
		 FROM feedback f
		 LEFT JOIN users u ON u.id = f.client_id
		 LEFT JOIN workouts w ON w.id = f.workout_id
		 ORDER BY f.date DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activity := &Activity{
		RecentFeedbacks: []ActivityEntry{},
		RPETrend:        []RPEPoint{},
	}
	for rows.Next() {
		var entry ActivityEntry
		if err := rows.Scan(&entry.ID, &entry.ClientID, &entry.ClientName,
			&entry.ClientSurname, &entry.ClientAvatar, &entry.WorkoutTitle,
			&entry.RPE, &entry.Comments, &entry.Date); err != nil {
			return nil, err
		}
		activity.RecentFeedbacks = append(activity.RecentFeedbacks, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Trend goes oldest to newest so charts read left to right.
	for i := len(activity.RecentFeedbacks) - 1; i >= 0; i-- {
		entry := activity.RecentFeedbacks[i]
		activity.RPETrend = append(activity.RPETrend, RPEPoint{RPE: entry.RPE, Date: entry.Date})
	}
	return activity, nil
}

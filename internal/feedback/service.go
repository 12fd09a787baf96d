package feedback

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/exercises"
)

// ExerciseSource resolves catalogue entries so entry names can be
// denormalised at write time.
type ExerciseSource interface {
	Get(ctx context.Context, id uuid.UUID) (*exercises.Exercise, error)
}

// Bumper invalidates derived dashboards after a write. Optional.
type Bumper interface {
	Bump(ctx context.Context) error
}

// Service carries feedback rules.
type Service struct {
	logger *slog.Logger
	repo   RepositoryPort
	exs    ExerciseSource
	bumper Bumper
}

func NewService(logger *slog.Logger, repo RepositoryPort, exs ExerciseSource, bumper Bumper) *Service {
	return &Service{logger: logger, repo: repo, exs: exs, bumper: bumper}
}

// EntryInput is one per-exercise record as submitted by the client.
type EntryInput struct {
	ExerciseID   uuid.UUID
	ExerciseName string
	WeightUsed   string
}

type CreateInput struct {
	ClientID  uuid.UUID
	WorkoutID uuid.UUID
	RPE       int
	Comments  string
	Entries   []EntryInput
}

// Create stores a feedback report. Entry names are looked up in the
// catalogue; when the exercise is already gone the client-provided name is
// kept so history survives deletions. Cache invalidation failures are logged
// and never fail the write.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Feedback, error) {
	fb := &Feedback{
		ID:        uuid.New(),
		ClientID:  in.ClientID,
		WorkoutID: in.WorkoutID,
		Date:      time.Now().UTC(),
		RPE:       in.RPE,
		Comments:  in.Comments,
		Exercises: []ExerciseEntry{},
	}
	for _, entry := range in.Entries {
		name := entry.ExerciseName
		if s.exs != nil {
			if ex, err := s.exs.Get(ctx, entry.ExerciseID); err == nil {
				name = ex.Name
			}
		}
		fb.Exercises = append(fb.Exercises, ExerciseEntry{
			ExerciseID:   entry.ExerciseID,
			ExerciseName: name,
			WeightUsed:   entry.WeightUsed,
		})
	}
	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}
	if s.bumper != nil {
		if err := s.bumper.Bump(ctx); err != nil {
			s.logger.Warn("bump stats cache", slog.Any("error", err))
		}
	}
	return fb, nil
}

func (s *Service) ListForClient(ctx context.Context, clientID uuid.UUID) ([]Feedback, error) {
	return s.repo.ListForClient(ctx, clientID)
}

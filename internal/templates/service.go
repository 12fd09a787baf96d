package templates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Prescription defaults applied when the trainer leaves a line field blank.
const (
	DefaultSets = "3"
	DefaultReps = "10-12"
	DefaultRest = "60s"
)

// Service carries template rules.
type Service struct {
	repo RepositoryPort
}

func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// LineInput is one prescribed exercise as submitted by the trainer.
type LineInput struct {
	ExerciseID uuid.UUID
	Sets       string
	Reps       string
	Rest       string
	Notes      string
}

type CreateInput struct {
	Title       string
	Description string
	Lines       []LineInput
}

func (s *Service) List(ctx context.Context) ([]Template, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Template, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Template, error) {
	tpl := &Template{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Lines:       buildLines(in.Lines),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Update overwrites the template wholesale, then re-reads it so callers get
// hydrated lines back.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in CreateInput) (*Template, error) {
	tpl := &Template{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Lines:       buildLines(in.Lines),
	}
	if err := s.repo.Update(ctx, tpl); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func buildLines(inputs []LineInput) []Line {
	lines := make([]Line, 0, len(inputs))
	for _, in := range inputs {
		line := Line{
			ExerciseID: in.ExerciseID,
			Sets:       in.Sets,
			Reps:       in.Reps,
			Rest:       in.Rest,
			Notes:      in.Notes,
		}
		if line.Sets == "" {
			line.Sets = DefaultSets
		}
		if line.Reps == "" {
			line.Reps = DefaultReps
		}
		if line.Rest == "" {
			line.Rest = DefaultRest
		}
		lines = append(lines, line)
	}
	return lines
}

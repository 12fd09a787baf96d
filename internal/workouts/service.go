package workouts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/templates"
)

// TemplateSource supplies the template a workout is copied from.
type TemplateSource interface {
	Get(ctx context.Context, id uuid.UUID) (*templates.Template, error)
}

// Service carries workout assignment rules.
type Service struct {
	repo RepositoryPort
	tpls TemplateSource
}

func NewService(repo RepositoryPort, tpls TemplateSource) *Service {
	return &Service{repo: repo, tpls: tpls}
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
	ClientID uuid.UUID
	Title    string
	Lines    []LineInput
}

func (s *Service) ListForClient(ctx context.Context, clientID uuid.UUID) ([]Workout, error) {
	return s.repo.ListForClient(ctx, clientID)
}

// Create assigns a routine to a client. Blank prescription fields fall back
// to the same defaults templates use.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Workout, error) {
	workout := &Workout{
		ID:           uuid.New(),
		ClientID:     in.ClientID,
		Title:        in.Title,
		DateAssigned: time.Now().UTC(),
		Lines:        buildLines(in.Lines),
		Status:       StatusActive,
		Order:        DefaultOrder,
	}
	if err := s.repo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// FromTemplate copies a template's title and lines into a fresh workout for
// the client. The copy is detached: later template edits do not touch
// already assigned routines.
func (s *Service) FromTemplate(ctx context.Context, clientID, templateID uuid.UUID) (*Workout, error) {
	tpl, err := s.tpls.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}
	workout := &Workout{
		ID:           uuid.New(),
		ClientID:     clientID,
		Title:        tpl.Title,
		DateAssigned: time.Now().UTC(),
		Status:       StatusActive,
		Order:        DefaultOrder,
	}
	for _, line := range tpl.Lines {
		workout.Lines = append(workout.Lines, Line{
			ExerciseID: line.ExerciseID,
			Sets:       line.Sets,
			Reps:       line.Reps,
			Rest:       line.Rest,
			Notes:      line.Notes,
		})
	}
	if err := s.repo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
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
			line.Sets = templates.DefaultSets
		}
		if line.Reps == "" {
			line.Reps = templates.DefaultReps
		}
		if line.Rest == "" {
			line.Rest = templates.DefaultRest
		}
		lines = append(lines, line)
	}
	return lines
}

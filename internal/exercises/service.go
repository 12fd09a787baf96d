package exercises

import (
	"context"

	"github.com/google/uuid"
)

// Service carries exercise catalogue rules.
type Service struct {
	repo RepositoryPort
}

func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// CreateInput captures a new catalogue entry.
type CreateInput struct {
	Name         string
	Category     Category
	VideoURL     string
	Instructions string
	Tags         []string
	Image        string
}

func (s *Service) List(ctx context.Context) ([]Exercise, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Exercise, error) {
	return s.repo.Get(ctx, id)
}

// Create adds an exercise. An empty category falls back to mobility, which
// mirrors how the catalogue is seeded.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Exercise, error) {
	category := in.Category
	if category == "" {
		category = CategoryMobility
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	ex := &Exercise{
		ID:           uuid.New(),
		Name:         in.Name,
		Category:     category,
		VideoURL:     in.VideoURL,
		Instructions: in.Instructions,
		Tags:         tags,
		Image:        in.Image,
	}
	if err := s.repo.Create(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

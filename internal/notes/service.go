package notes

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service carries note rules.
type Service struct {
	repo RepositoryPort
}

func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, clientID uuid.UUID, content string) (*Note, error) {
	note := &Note{
		ID:       uuid.New(),
		ClientID: clientID,
		Content:  content,
		Date:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) ListForClient(ctx context.Context, clientID uuid.UUID) ([]Note, error) {
	return s.repo.ListForClient(ctx, clientID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, content string) (*Note, error) {
	return s.repo.Update(ctx, id, content)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

package evaluations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// Service carries evaluation rules.
type Service struct {
	repo RepositoryPort
}

func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	ClientID      uuid.UUID
	Type          Type
	PriorityZones []string
	Focus         Focus
	Notes         string
	FileURL       string
}

// Create records a body reading. An empty type defaults to a follow-up;
// unknown zones or focus values are rejected rather than silently stored.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Evaluation, error) {
	evalType := in.Type
	if evalType == "" {
		evalType = TypeFollowUp
	}
	if !evalType.Valid() {
		return nil, httpx.ErrValidation
	}
	if in.Focus != "" && !in.Focus.Valid() {
		return nil, httpx.ErrValidation
	}
	zones := in.PriorityZones
	if zones == nil {
		zones = []string{}
	}
	for _, zone := range zones {
		if !ValidZone(zone) {
			return nil, httpx.ErrValidation
		}
	}
	eval := &Evaluation{
		ID:            uuid.New(),
		ClientID:      in.ClientID,
		Date:          time.Now().UTC(),
		Type:          evalType,
		PriorityZones: zones,
		Focus:         in.Focus,
		Notes:         in.Notes,
		FileURL:       in.FileURL,
	}
	if err := s.repo.Create(ctx, eval); err != nil {
		return nil, err
	}
	return eval, nil
}

func (s *Service) ListForClient(ctx context.Context, clientID uuid.UUID) ([]Evaluation, error) {
	return s.repo.ListForClient(ctx, clientID)
}

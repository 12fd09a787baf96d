package users

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/auth"
)

// Service handles trainer-side account management.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the identity fields an admin supplies for a new client.
type CreateInput struct {
	Name    string
	Surname string
	Email   string
	Phone   string
	Profile auth.Profile
}

// UpdateInput applies partial edits to an account's identity and profile.
// Nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Surname     *string
	Email       *string
	Phone       *string
	Limitations *[]string
	Objectives  *[]string
	Status      *string
}

// ListClients returns all client accounts.
func (s *Service) ListClients(ctx context.Context) ([]auth.User, error) {
	return s.repo.ListClients(ctx)
}

// Get returns one account.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return s.repo.Get(ctx, id)
}

// Create provisions a client account. The temporary password is hashed and
// never revealed; the returned invite code is the one-time capability the
// client uses to set a real password. This is the only moment the code is
// exposed.
func (s *Service) Create(ctx context.Context, in CreateInput) (*auth.User, string, error) {
	code, err := auth.NewCode()
	if err != nil {
		return nil, "", err
	}
	hash, err := auth.HashPassword(auth.NewTempPassword())
	if err != nil {
		return nil, "", err
	}
	profile := in.Profile
	if profile.Status == "" {
		profile.Status = auth.StatusDefault
	}
	user := &auth.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         auth.RoleClient,
		Profile:      profile,
		Phone:        in.Phone,
		InviteCode:   &code,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateProvisioned(ctx, user); err != nil {
		return nil, "", err
	}
	return user, code, nil
}

// Update edits identity and profile fields.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*auth.User, error) {
	return s.repo.Update(ctx, id, in)
}

// Delete removes the account without cascading.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// IssueRecoveryCode mints and stores a fresh recovery code for the target
// account, replacing any previous one.
func (s *Service) IssueRecoveryCode(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return "", err
	}
	code, err := auth.NewCode()
	if err != nil {
		return "", err
	}
	if err := s.repo.SetRecoveryCode(ctx, id, code); err != nil {
		return "", err
	}
	return code, nil
}

// SetAvatar records an uploaded avatar URL on the account.
func (s *Service) SetAvatar(ctx context.Context, id uuid.UUID, url string) error {
	return s.repo.SetAvatar(ctx, id, url)
}

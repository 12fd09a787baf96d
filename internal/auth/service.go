package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// Service implements the account lifecycle flows: register, login, invite
// claim, and recovery reset.
type Service struct {
	repo   Repository
	tokens *TokenManager
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// RegisterInput carries self-registration fields.
type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
	Profile  Profile
}

// Register creates an active account and logs it in. Self-registered users
// are always clients: admin accounts only come from seeding, never from this
// endpoint.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, *User, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return "", nil, err
	}
	profile := in.Profile
	if profile.Status == "" {
		profile.Status = StatusDefault
	}
	user := &User{
		ID:           uuid.New(),
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         RoleClient,
		Profile:      profile,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", nil, err
	}
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login validates credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return "", nil, httpx.ErrInvalidCredentials
		}
		return "", nil, err
	}
	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, httpx.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ClaimAccount activates a provisioned account: the invite code is a one-time
// capability to set the first real password. On success the code is burned
// and the user is logged in.
func (s *Service) ClaimAccount(ctx context.Context, email, code, password string) (string, *User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return "", nil, httpx.ErrInvalidCode
		}
		return "", nil, err
	}
	if !codeMatches(user.InviteCode, code) {
		return "", nil, httpx.ErrInvalidCode
	}
	hash, err := HashPassword(password)
	if err != nil {
		return "", nil, err
	}
	if err := s.repo.SetPasswordClearInvite(ctx, user.ID, hash); err != nil {
		return "", nil, err
	}
	user.PasswordHash = hash
	user.InviteCode = nil
	user.Profile.Status = StatusActive
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ResetPassword consumes a recovery code and installs a new password.
// Unlike ClaimAccount it deliberately does not log the user in; the client
// returns to the login screen with the new credentials.
func (s *Service) ResetPassword(ctx context.Context, email, code, password string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return httpx.ErrInvalidCode
		}
		return err
	}
	if !codeMatches(user.RecoveryCode, code) {
		return httpx.ErrInvalidCode
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.repo.SetPasswordClearRecovery(ctx, user.ID, hash)
}

// Me returns the current account state for a verified identity.
func (s *Service) Me(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func codeMatches(stored *string, presented string) bool {
	if stored == nil || *stored == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(presented)) == 1
}

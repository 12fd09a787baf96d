package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calibra-app/calibra/internal/auth"
	"github.com/calibra-app/calibra/internal/platform/httpx"
)

type mockRepository struct {
	users map[uuid.UUID]*auth.User
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[uuid.UUID]*auth.User)}
}

func (m *mockRepository) ListClients(_ context.Context) ([]auth.User, error) {
	var out []auth.User
	for _, u := range m.users {
		if u.Role == auth.RoleClient {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(_ context.Context, id uuid.UUID) (*auth.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepository) CreateProvisioned(_ context.Context, user *auth.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return httpx.ErrDuplicate
		}
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockRepository) Update(_ context.Context, id uuid.UUID, in UpdateInput) (*auth.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Surname != nil {
		u.Surname = *in.Surname
	}
	if in.Email != nil {
		for otherID, other := range m.users {
			if otherID != id && other.Email == *in.Email {
				return nil, httpx.ErrDuplicate
			}
		}
		u.Email = *in.Email
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Limitations != nil {
		u.Profile.Limitations = *in.Limitations
	}
	if in.Objectives != nil {
		u.Profile.Objectives = *in.Objectives
	}
	if in.Status != nil {
		u.Profile.Status = *in.Status
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockRepository) SetRecoveryCode(_ context.Context, id uuid.UUID, code string) error {
	u, ok := m.users[id]
	if !ok {
		return httpx.ErrNotFound
	}
	u.RecoveryCode = &code
	return nil
}

func (m *mockRepository) SetAvatar(_ context.Context, id uuid.UUID, url string) error {
	u, ok := m.users[id]
	if !ok {
		return httpx.ErrNotFound
	}
	u.Avatar = url
	return nil
}

func TestServiceCreateProvisionsClient(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	user, code, err := svc.Create(context.Background(), CreateInput{
		Name:    "Marta",
		Surname: "Gil",
		Email:   "marta@example.com",
	})
	require.NoError(t, err)
	require.Len(t, code, 6)

	stored := repo.users[user.ID]
	require.NotNil(t, stored)
	assert.Equal(t, auth.RoleClient, stored.Role)
	assert.Equal(t, auth.StatusDefault, stored.Profile.Status)
	require.NotNil(t, stored.InviteCode)
	assert.Equal(t, code, *stored.InviteCode)
	assert.NotEmpty(t, stored.PasswordHash, "a placeholder credential must exist before claim")
}

func TestServiceCreateKeepsProvidedStatus(t *testing.T) {
	svc := NewService(newMockRepository())

	user, _, err := svc.Create(context.Background(), CreateInput{
		Name:    "Marta",
		Surname: "Gil",
		Email:   "marta@example.com",
		Profile: auth.Profile{Status: auth.StatusActive},
	})
	require.NoError(t, err)
	assert.Equal(t, auth.StatusActive, user.Profile.Status)
}

func TestServiceCreateDuplicateEmail(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	_, _, err := svc.Create(ctx, CreateInput{Name: "A", Surname: "B", Email: "dup@example.com"})
	require.NoError(t, err)

	_, _, err = svc.Create(ctx, CreateInput{Name: "C", Surname: "D", Email: "dup@example.com"})
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestServiceUpdatePartial(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	user, _, err := svc.Create(ctx, CreateInput{Name: "Marta", Surname: "Gil", Email: "marta@example.com"})
	require.NoError(t, err)

	newPhone := "600111222"
	objectives := []string{"fuerza"}
	updated, err := svc.Update(ctx, user.ID, UpdateInput{Phone: &newPhone, Objectives: &objectives})
	require.NoError(t, err)

	assert.Equal(t, "600111222", updated.Phone)
	assert.Equal(t, objectives, updated.Profile.Objectives)
	assert.Equal(t, "Marta", updated.Name, "untouched fields keep their values")
}

func TestServiceUpdateUnknownUser(t *testing.T) {
	svc := NewService(newMockRepository())

	name := "Nadie"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Name: &name})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestServiceDelete(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	user, _, err := svc.Create(ctx, CreateInput{Name: "Marta", Surname: "Gil", Email: "marta@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))
	_, err = svc.Get(ctx, user.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, user.ID), httpx.ErrNotFound)
}

func TestServiceIssueRecoveryCode(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	user, _, err := svc.Create(ctx, CreateInput{Name: "Marta", Surname: "Gil", Email: "marta@example.com"})
	require.NoError(t, err)

	code, err := svc.IssueRecoveryCode(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, code, 6)
	require.NotNil(t, repo.users[user.ID].RecoveryCode)
	assert.Equal(t, code, *repo.users[user.ID].RecoveryCode)

	second, err := svc.IssueRecoveryCode(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, second, *repo.users[user.ID].RecoveryCode, "a fresh code replaces the previous one")
}

func TestServiceIssueRecoveryCodeUnknownUser(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.IssueRecoveryCode(context.Background(), uuid.New())
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestServiceListClientsSkipsAdmins(t *testing.T) {
	repo := newMockRepository()
	admin := &auth.User{ID: uuid.New(), Email: "admin@example.com", Role: auth.RoleAdmin}
	repo.users[admin.ID] = admin
	svc := NewService(repo)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, CreateInput{Name: "Marta", Surname: "Gil", Email: "marta@example.com"})
	require.NoError(t, err)

	clients, err := svc.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "marta@example.com", clients[0].Email)
}

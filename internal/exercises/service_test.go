package exercises

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calibra-app/calibra/internal/platform/httpx"
)

type mockRepository struct {
	exercises map[uuid.UUID]*Exercise
}

func newMockRepository() *mockRepository {
	return &mockRepository{exercises: make(map[uuid.UUID]*Exercise)}
}

func (m *mockRepository) List(_ context.Context) ([]Exercise, error) {
	var out []Exercise
	for _, ex := range m.exercises {
		out = append(out, *ex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockRepository) Get(_ context.Context, id uuid.UUID) (*Exercise, error) {
	ex, ok := m.exercises[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *ex
	return &copied, nil
}

func (m *mockRepository) Create(_ context.Context, ex *Exercise) error {
	copied := *ex
	m.exercises[ex.ID] = &copied
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.exercises[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.exercises, id)
	return nil
}

func TestServiceCreateDefaultsCategory(t *testing.T) {
	svc := NewService(newMockRepository())

	ex, err := svc.Create(context.Background(), CreateInput{Name: "Sentadilla goblet"})
	require.NoError(t, err)
	assert.Equal(t, CategoryMobility, ex.Category)
	assert.NotNil(t, ex.Tags)
}

func TestServiceCreateKeepsCategory(t *testing.T) {
	svc := NewService(newMockRepository())

	ex, err := svc.Create(context.Background(), CreateInput{
		Name:     "Press banca",
		Category: CategoryStrength,
		Tags:     []string{"hombro", "banca"},
	})
	require.NoError(t, err)
	assert.Equal(t, CategoryStrength, ex.Category)
	assert.Equal(t, []string{"hombro", "banca"}, ex.Tags)
}

func TestServiceListSortedByName(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	for _, name := range []string{"Zancada", "Apertura de cadera", "Press banca"} {
		_, err := svc.Create(ctx, CreateInput{Name: name})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Apertura de cadera", list[0].Name)
	assert.Equal(t, "Zancada", list[2].Name)
}

func TestServiceDelete(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	ex, err := svc.Create(ctx, CreateInput{Name: "Plancha"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, ex.ID))
	assert.ErrorIs(t, svc.Delete(ctx, ex.ID), httpx.ErrNotFound)
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryCardio.Valid())
	assert.True(t, CategoryBreathing.Valid())
	assert.False(t, Category("Yoga").Valid())
	assert.False(t, Category("").Valid())
}

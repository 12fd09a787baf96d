package templates

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
	templates map[uuid.UUID]*Template
}

func newMockRepository() *mockRepository {
	return &mockRepository{templates: make(map[uuid.UUID]*Template)}
}

func (m *mockRepository) List(_ context.Context) ([]Template, error) {
	var out []Template
	for _, tpl := range m.templates {
		out = append(out, *tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *mockRepository) Get(_ context.Context, id uuid.UUID) (*Template, error) {
	tpl, ok := m.templates[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *tpl
	return &copied, nil
}

func (m *mockRepository) Create(_ context.Context, tpl *Template) error {
	copied := *tpl
	m.templates[tpl.ID] = &copied
	return nil
}

func (m *mockRepository) Update(_ context.Context, tpl *Template) error {
	existing, ok := m.templates[tpl.ID]
	if !ok {
		return httpx.ErrNotFound
	}
	existing.Title = tpl.Title
	existing.Description = tpl.Description
	existing.Lines = tpl.Lines
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.templates[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.templates, id)
	return nil
}

func TestServiceCreateAppliesLineDefaults(t *testing.T) {
	svc := NewService(newMockRepository())

	tpl, err := svc.Create(context.Background(), CreateInput{
		Title: "Fuerza Básica A",
		Lines: []LineInput{{ExerciseID: uuid.New()}},
	})
	require.NoError(t, err)
	require.Len(t, tpl.Lines, 1)
	assert.Equal(t, DefaultSets, tpl.Lines[0].Sets)
	assert.Equal(t, DefaultReps, tpl.Lines[0].Reps)
	assert.Equal(t, DefaultRest, tpl.Lines[0].Rest)
}

func TestServiceCreateKeepsExplicitPrescription(t *testing.T) {
	svc := NewService(newMockRepository())

	tpl, err := svc.Create(context.Background(), CreateInput{
		Title: "Fuerza Básica A",
		Lines: []LineInput{{
			ExerciseID: uuid.New(),
			Sets:       "5",
			Reps:       "5",
			Rest:       "180s",
			Notes:      "sin fallo",
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "5", tpl.Lines[0].Sets)
	assert.Equal(t, "180s", tpl.Lines[0].Rest)
	assert.Equal(t, "sin fallo", tpl.Lines[0].Notes)
}

func TestServiceCreatePreservesLineOrder(t *testing.T) {
	svc := NewService(newMockRepository())

	first, second, third := uuid.New(), uuid.New(), uuid.New()
	tpl, err := svc.Create(context.Background(), CreateInput{
		Title: "Fullbody",
		Lines: []LineInput{{ExerciseID: first}, {ExerciseID: second}, {ExerciseID: third}},
	})
	require.NoError(t, err)
	require.Len(t, tpl.Lines, 3)
	assert.Equal(t, first, tpl.Lines[0].ExerciseID)
	assert.Equal(t, second, tpl.Lines[1].ExerciseID)
	assert.Equal(t, third, tpl.Lines[2].ExerciseID)
}

func TestServiceUpdateReplacesLines(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	tpl, err := svc.Create(ctx, CreateInput{
		Title: "Fuerza Básica A",
		Lines: []LineInput{{ExerciseID: uuid.New()}, {ExerciseID: uuid.New()}},
	})
	require.NoError(t, err)

	replacement := uuid.New()
	updated, err := svc.Update(ctx, tpl.ID, CreateInput{
		Title:       "Fuerza Básica B",
		Description: "progresión",
		Lines:       []LineInput{{ExerciseID: replacement, Sets: "4"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Fuerza Básica B", updated.Title)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, replacement, updated.Lines[0].ExerciseID)
	assert.Equal(t, "4", updated.Lines[0].Sets)
}

func TestServiceUpdateUnknownTemplate(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Update(context.Background(), uuid.New(), CreateInput{Title: "Nada"})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestServiceDelete(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	tpl, err := svc.Create(ctx, CreateInput{Title: "Fullbody"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, tpl.ID))
	assert.ErrorIs(t, svc.Delete(ctx, tpl.ID), httpx.ErrNotFound)
}

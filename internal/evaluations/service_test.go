package evaluations

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
	evaluations map[uuid.UUID]*Evaluation
}

func newMockRepository() *mockRepository {
	return &mockRepository{evaluations: make(map[uuid.UUID]*Evaluation)}
}

func (m *mockRepository) Create(_ context.Context, eval *Evaluation) error {
	copied := *eval
	m.evaluations[eval.ID] = &copied
	return nil
}

func (m *mockRepository) ListForClient(_ context.Context, clientID uuid.UUID) ([]Evaluation, error) {
	var out []Evaluation
	for _, eval := range m.evaluations {
		if eval.ClientID == clientID {
			out = append(out, *eval)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func TestServiceCreateDefaultsToFollowUp(t *testing.T) {
	svc := NewService(newMockRepository())

	eval, err := svc.Create(context.Background(), CreateInput{ClientID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, TypeFollowUp, eval.Type)
	assert.NotNil(t, eval.PriorityZones)
}

func TestServiceCreateFullReading(t *testing.T) {
	svc := NewService(newMockRepository())

	eval, err := svc.Create(context.Background(), CreateInput{
		ClientID:      uuid.New(),
		Type:          TypeInitial,
		PriorityZones: []string{"Cadera", "Rodilla"},
		Focus:         FocusMotorControl,
		Notes:         "No aumentar carga hasta control de valgo",
	})
	require.NoError(t, err)
	assert.Equal(t, TypeInitial, eval.Type)
	assert.Equal(t, []string{"Cadera", "Rodilla"}, eval.PriorityZones)
	assert.Equal(t, FocusMotorControl, eval.Focus)
}

func TestServiceCreateRejectsUnknownValues(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{ClientID: uuid.New(), Type: Type("Anual")})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(ctx, CreateInput{ClientID: uuid.New(), PriorityZones: []string{"Oreja"}})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(ctx, CreateInput{ClientID: uuid.New(), Focus: Focus("Crossfit")})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestServiceListForClient(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	mine, other := uuid.New(), uuid.New()
	_, err := svc.Create(ctx, CreateInput{ClientID: mine, Type: TypeInitial})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{ClientID: other})
	require.NoError(t, err)

	list, err := svc.ListForClient(ctx, mine)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, TypeInitial, list[0].Type)
}

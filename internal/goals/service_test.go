package goals

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dompetku/dompetku/internal/shared"
)

type memoryGoalRepo struct {
	goals map[uuid.UUID]SavingsGoal
}

func newMemoryGoalRepo() *memoryGoalRepo {
	return &memoryGoalRepo{goals: make(map[uuid.UUID]SavingsGoal)}
}

func (r *memoryGoalRepo) Insert(ctx context.Context, goal SavingsGoal) error {
	r.goals[goal.ID] = goal
	return nil
}

func (r *memoryGoalRepo) List(ctx context.Context, owner string) ([]SavingsGoal, error) {
	var out []SavingsGoal
	for _, goal := range r.goals {
		if goal.Owner == owner {
			out = append(out, goal)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryGoalRepo) Contribute(ctx context.Context, owner string, id uuid.UUID, amount float64, at time.Time) (SavingsGoal, error) {
	goal, ok := r.goals[id]
	if !ok || goal.Owner != owner {
		return SavingsGoal{}, shared.ErrNotFound
	}
	if goal.Status != StatusRunning {
		return SavingsGoal{}, shared.ErrGoalClosed
	}
	goal.Accumulated += amount
	if goal.Accumulated >= goal.Target {
		goal.Status = StatusAchieved
	}
	goal.UpdatedAt = at
	goal.refreshPercent()
	r.goals[id] = goal
	return goal, nil
}

func newGoalService(repo RepositoryPort) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateGoal(t *testing.T) {
	ctx := context.Background()
	svc := newGoalService(newMemoryGoalRepo())

	goal, err := svc.Create(ctx, CreateInput{Owner: " Budi@Example.com ", Label: "Dana darurat", Target: 500000})
	require.NoError(t, err)
	require.Equal(t, "budi@example.com", goal.Owner)
	require.Equal(t, StatusRunning, goal.Status)
	require.Equal(t, 0.0, goal.Accumulated)
	require.Equal(t, 0.0, goal.Percent)
	require.NotEqual(t, uuid.Nil, goal.ID)
}

func TestCreateGoalRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := newGoalService(newMemoryGoalRepo())

	_, err := svc.Create(ctx, CreateInput{Owner: "budi@example.com", Label: "", Target: 1000})
	require.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Create(ctx, CreateInput{Owner: "budi@example.com", Label: "Motor", Target: 0})
	require.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Create(ctx, CreateInput{Owner: "budi@example.com", Label: "Motor", Target: -10})
	require.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Create(ctx, CreateInput{Owner: "", Label: "Motor", Target: 1000})
	require.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestContributeUntilAchieved(t *testing.T) {
	ctx := context.Background()
	svc := newGoalService(newMemoryGoalRepo())

	goal, err := svc.Create(ctx, CreateInput{Owner: "budi@example.com", Label: "Dana darurat", Target: 500000})
	require.NoError(t, err)

	goal, err = svc.Contribute(ctx, "budi@example.com", goal.ID, 300000)
	require.NoError(t, err)
	require.Equal(t, StatusRunning, goal.Status)
	require.Equal(t, 300000.0, goal.Accumulated)
	require.Equal(t, 60.0, goal.Percent)

	goal, err = svc.Contribute(ctx, "budi@example.com", goal.ID, 300000)
	require.NoError(t, err)
	require.Equal(t, StatusAchieved, goal.Status)
	require.Equal(t, 600000.0, goal.Accumulated)
	require.Equal(t, 100.0, goal.Percent)

	_, err = svc.Contribute(ctx, "budi@example.com", goal.ID, 1000)
	require.ErrorIs(t, err, shared.ErrGoalClosed)
}

func TestContributeValidation(t *testing.T) {
	ctx := context.Background()
	svc := newGoalService(newMemoryGoalRepo())

	goal, err := svc.Create(ctx, CreateInput{Owner: "budi@example.com", Label: "Motor", Target: 1000})
	require.NoError(t, err)

	_, err = svc.Contribute(ctx, "budi@example.com", goal.ID, 0)
	require.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Contribute(ctx, "budi@example.com", goal.ID, -500)
	require.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Contribute(ctx, "budi@example.com", uuid.Nil, 100)
	require.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestContributeScopedToOwner(t *testing.T) {
	ctx := context.Background()
	svc := newGoalService(newMemoryGoalRepo())

	goal, err := svc.Create(ctx, CreateInput{Owner: "budi@example.com", Label: "Motor", Target: 1000})
	require.NoError(t, err)

	_, err = svc.Contribute(ctx, "intan@example.com", goal.ID, 100)
	require.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.Contribute(ctx, "budi@example.com", uuid.New(), 100)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAccumulatedNeverDecreases(t *testing.T) {
	ctx := context.Background()
	svc := newGoalService(newMemoryGoalRepo())

	goal, err := svc.Create(ctx, CreateInput{Owner: "budi@example.com", Label: "Motor", Target: 100000})
	require.NoError(t, err)

	previous := goal.Accumulated
	for i := 0; i < 5; i++ {
		goal, err = svc.Contribute(ctx, "budi@example.com", goal.ID, 7000)
		require.NoError(t, err)
		require.Greater(t, goal.Accumulated, previous)
		previous = goal.Accumulated
	}
}

func TestListScopedToOwner(t *testing.T) {
	ctx := context.Background()
	svc := newGoalService(newMemoryGoalRepo())

	_, err := svc.Create(ctx, CreateInput{Owner: "budi@example.com", Label: "Motor", Target: 1000})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Owner: "intan@example.com", Label: "Laptop", Target: 5000})
	require.NoError(t, err)

	goals, err := svc.List(ctx, "budi@example.com")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	require.Equal(t, "Motor", goals[0].Label)
}

func TestPercentRoundsToOneDecimal(t *testing.T) {
	ctx := context.Background()
	svc := newGoalService(newMemoryGoalRepo())

	goal, err := svc.Create(ctx, CreateInput{Owner: "budi@example.com", Label: "Motor", Target: 3000})
	require.NoError(t, err)

	goal, err = svc.Contribute(ctx, "budi@example.com", goal.ID, 1000)
	require.NoError(t, err)
	require.Equal(t, 33.3, goal.Percent)
}

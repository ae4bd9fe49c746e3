package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/repository"
	"github.com/kjbranchesi/alf-coach-backend/internal/logging"
)

func setupService(t *testing.T) *BlueprintService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	repo := repository.NewRedisRepo(client)
	return NewBlueprintService(repo, 30*24*time.Hour, logging.NewNop())
}

func TestBlueprintService_SaveDerivesStage(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	sum, err := svc.Save(ctx, &domain.Blueprint{
		ID:     "new-1700000000",
		UserID: "u1",
		Ideation: domain.Ideation{
			BigIdea: "stories keep memory",
		},
	})
	require.NoError(t, err)
	assert.False(t, domain.IsPlaceholderID(sum.ID))
	assert.Equal(t, domain.StageIdeation, sum.Stage)
	assert.Equal(t, "Ideation", sum.StageLabel)
}

func TestBlueprintService_ListReturnsSummaries(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, &domain.Blueprint{
		UserID: "u1",
		Journey: domain.Journey{Phases: []domain.Phase{
			{Name: "Listen"}, {Name: "Record"}, {Name: "Curate"},
		}},
	})
	require.NoError(t, err)

	items, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.StageLearningJourney, items[0].Stage)
	assert.Equal(t, "Learning Journey", items[0].StageLabel)
}

func TestBlueprintService_Complete(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	sum, err := svc.Save(ctx, &domain.Blueprint{
		UserID:   "u1",
		Ideation: domain.Ideation{BigIdea: "x"},
	})
	require.NoError(t, err)

	done, err := svc.Complete(ctx, "u1", sum.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageCompleted, done.Stage)
	assert.Equal(t, domain.StepComplete, done.CurrentStep)
}

func TestBlueprintService_DeleteRestore(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	sum, err := svc.Save(ctx, &domain.Blueprint{
		UserID:   "u1",
		Ideation: domain.Ideation{BigIdea: "x"},
	})
	require.NoError(t, err)

	ok, err := svc.Delete(ctx, "u1", sum.ID)
	require.NoError(t, err)
	require.True(t, ok)

	deleted, err := svc.ListDeleted(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, deleted, 1)

	ok, err = svc.Restore(ctx, "u1", sum.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.Get(ctx, "u1", sum.ID)
	require.NoError(t, err)
}

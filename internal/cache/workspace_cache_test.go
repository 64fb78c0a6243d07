package cache

import (
	"context"
	"testing"

	"tandem-server/configs"
	"tandem-server/internal/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type snapshotFixture struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	configs.Logger = zap.NewNop()

	mr := miniredis.RunT(t)
	repositories.DBS.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr
}

func TestWorkspaceSnapshotRoundTrip(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	original := snapshotFixture{ID: "TO4K2M9QX", Name: "Acme Corp"}
	require.NoError(t, SetWorkspaceSnapshot(ctx, original.ID, original))

	var loaded snapshotFixture
	found, err := GetWorkspaceSnapshot(ctx, original.ID, &loaded)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, original, loaded)
}

func TestWorkspaceSnapshotMiss(t *testing.T) {
	setupTestRedis(t)

	var loaded snapshotFixture
	found, err := GetWorkspaceSnapshot(context.Background(), "TO0000000", &loaded)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestWorkspaceSnapshotExpires(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	original := snapshotFixture{ID: "TO4K2M9QX", Name: "Acme Corp"}
	require.NoError(t, SetWorkspaceSnapshot(ctx, original.ID, original))

	mr.FastForward(SnapshotTTL + 1)

	var loaded snapshotFixture
	found, err := GetWorkspaceSnapshot(ctx, original.ID, &loaded)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidateWorkspace(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	original := snapshotFixture{ID: "TO4K2M9QX", Name: "Acme Corp"}
	require.NoError(t, SetWorkspaceSnapshot(ctx, original.ID, original))

	InvalidateWorkspace(ctx, original.ID)

	var loaded snapshotFixture
	found, err := GetWorkspaceSnapshot(ctx, original.ID, &loaded)
	require.NoError(t, err)
	assert.False(t, found)
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tandem-server/configs"
	"tandem-server/internal/repositories"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const workspaceKeyPrefix = "workspace:snapshot:"

// SnapshotTTL bounds staleness of cached workspace payloads; every mutation
// also invalidates eagerly.
const SnapshotTTL = 5 * time.Minute

func workspaceKey(workspaceID string) string {
	return workspaceKeyPrefix + workspaceID
}

// SetWorkspaceSnapshot stores a serialized workspace payload in Redis.
func SetWorkspaceSnapshot(ctx context.Context, workspaceID string, value interface{}) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize workspace snapshot: %w", err)
	}

	if err := repositories.DBS.Redis.Set(ctx, workspaceKey(workspaceID), jsonData, SnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to store workspace snapshot in Redis: %w", err)
	}

	return nil
}

// GetWorkspaceSnapshot retrieves a cached workspace payload. Cache misses and
// transport errors both report found=false; callers fall through to the
// database either way.
func GetWorkspaceSnapshot(ctx context.Context, workspaceID string, value interface{}) (bool, error) {
	cachedData, err := repositories.DBS.Redis.Get(ctx, workspaceKey(workspaceID)).Result()
	if err != nil {
		if err != redis.Nil {
			configs.Logger.Warn("Failed to get workspace snapshot from Redis", zap.Error(err))
		}
		return false, nil
	}

	if err := json.Unmarshal([]byte(cachedData), value); err != nil {
		configs.Logger.Warn("Failed to deserialize workspace snapshot", zap.Error(err))
		return false, nil
	}

	return true, nil
}

// InvalidateWorkspace drops the cached payload for a workspace. Called after
// every workspace/channel/invitation mutation.
func InvalidateWorkspace(ctx context.Context, workspaceID string) {
	if err := repositories.DBS.Redis.Del(ctx, workspaceKey(workspaceID)).Err(); err != nil {
		configs.Logger.Warn("Failed to invalidate workspace snapshot",
			zap.String("workspaceId", workspaceID),
			zap.Error(err),
		)
	}
}

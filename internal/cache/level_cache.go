package cache

import (
	"fmt"
	"time"

	"github.com/Fluxpuck/sero-backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// LevelTTL bounds staleness of cached progression reads. Mutations
// invalidate eagerly, so the TTL only covers missed invalidations.
const LevelTTL = 2 * time.Minute

// LevelCache caches progression records for the read endpoint. All
// methods are safe on a nil cache (Redis unavailable), in which case
// every read falls through to the database.
type LevelCache struct {
	redis *RedisCache
}

func NewLevelCache(redis *RedisCache) *LevelCache {
	return &LevelCache{redis: redis}
}

func levelKey(guildID, userID string) string {
	return fmt.Sprintf("level:%s:%s", guildID, userID)
}

// Get retrieves a cached record.
func (lc *LevelCache) Get(guildID, userID string) (*models.UserLevel, bool) {
	if lc == nil || lc.redis == nil {
		return nil, false
	}
	data, err := lc.redis.Get(levelKey(guildID, userID))
	if err != nil || data == nil {
		return nil, false
	}

	var record models.UserLevel
	if err := msgpack.Unmarshal(data, &record); err != nil {
		return nil, false
	}
	return &record, true
}

// Set caches a record snapshot.
func (lc *LevelCache) Set(record *models.UserLevel) error {
	if lc == nil || lc.redis == nil || record == nil {
		return nil
	}
	data, err := msgpack.Marshal(record)
	if err != nil {
		return err
	}
	return lc.redis.Set(levelKey(record.GuildID, record.UserID), data, LevelTTL)
}

// Invalidate drops the cached record after a mutation.
func (lc *LevelCache) Invalidate(guildID, userID string) {
	if lc == nil || lc.redis == nil {
		return
	}
	_ = lc.redis.Delete(levelKey(guildID, userID))
}

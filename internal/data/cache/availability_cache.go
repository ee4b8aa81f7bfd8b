package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityCache is an advisory read-through cache for availability
// results. Entries are stamped with per-resource ledger versions; any
// ledger write bumps the version for the touched resource and date, which
// makes every entry computed against the old version a miss. Correctness
// never depends on this cache: hold creation re-validates in the ledger.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// Entry is a cached availability result plus the version snapshot it was
// computed against.
type Entry struct {
	StartTimes []time.Time      `json:"start_times"`
	Versions   map[string]int64 `json:"versions"`
}

func NewAvailabilityCache(client *redis.Client, ttlSeconds int, log *zap.Logger) *AvailabilityCache {
	if client == nil {
		return nil
	}
	return &AvailabilityCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
		log:    log.With(zap.String("cache", "availability")),
	}
}

// Enabled reports whether caching is configured.
func (c *AvailabilityCache) Enabled() bool {
	return c != nil && c.client != nil
}

func entryKey(subjectID uuid.UUID, date string) string {
	return fmt.Sprintf("avail:%s:%s", subjectID.String(), date)
}

func versionKey(resourceID uuid.UUID, date string) string {
	return fmt.Sprintf("ledger:ver:%s:%s", date, resourceID.String())
}

// Versions returns the current ledger version per resource for a date.
// Resources never written to have version 0.
func (c *AvailabilityCache) Versions(ctx context.Context, resourceIDs []uuid.UUID, date string) (map[string]int64, error) {
	if !c.Enabled() || len(resourceIDs) == 0 {
		return map[string]int64{}, nil
	}

	keys := make([]string, len(resourceIDs))
	for i, id := range resourceIDs {
		keys[i] = versionKey(id, date)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read ledger versions: %w", err)
	}

	versions := make(map[string]int64, len(keys))
	for i, v := range values {
		var version int64
		if s, ok := v.(string); ok {
			version, _ = strconv.ParseInt(s, 10, 64)
		}
		versions[keys[i]] = version
	}

	return versions, nil
}

// Get returns the cached entry if present and computed against the given
// version snapshot. Stale entries are dropped.
func (c *AvailabilityCache) Get(ctx context.Context, subjectID uuid.UUID, date string, current map[string]int64) ([]time.Time, bool) {
	if !c.Enabled() {
		return nil, false
	}

	raw, err := c.client.Get(ctx, entryKey(subjectID, date)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("Cache read failed", zap.Error(err), zap.String("subject_id", subjectID.String()))
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.log.Warn("Cache entry corrupt, dropping", zap.Error(err))
		c.client.Del(ctx, entryKey(subjectID, date))
		return nil, false
	}

	for key, version := range current {
		if entry.Versions[key] != version {
			c.client.Del(ctx, entryKey(subjectID, date))
			return nil, false
		}
	}

	return entry.StartTimes, true
}

// Store caches an availability result stamped with the version snapshot
// taken before computation. If the ledger moved mid-computation the
// stamp is already stale and the next Get discards the entry.
func (c *AvailabilityCache) Store(ctx context.Context, subjectID uuid.UUID, date string, startTimes []time.Time, versions map[string]int64) {
	if !c.Enabled() {
		return
	}

	entry := Entry{StartTimes: startTimes, Versions: versions}
	raw, err := json.Marshal(entry)
	if err != nil {
		c.log.Warn("Cache entry marshal failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, entryKey(subjectID, date), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", zap.Error(err), zap.String("subject_id", subjectID.String()))
	}
}

// Bump invalidates availability for the given resources and date by
// advancing their ledger versions. Called after every ledger mutation.
func (c *AvailabilityCache) Bump(ctx context.Context, resourceIDs []uuid.UUID, date string) {
	if !c.Enabled() || len(resourceIDs) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for _, id := range resourceIDs {
		key := versionKey(id, date)
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, 48*time.Hour)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("Cache invalidation failed", zap.Error(err), zap.String("date", date))
	}
}

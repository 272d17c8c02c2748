/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package calendar

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/friendsincode/roundtable/internal/models"
)

// Cache key layout: one entry per participant+range, so repeated searches
// over the same window reuse the entry regardless of the id set requested.
const (
	busyKeyPrefix  = "roundtable:cache:busy:"
	DefaultBusyTTL = 5 * time.Minute
)

// CacheConfig contains Redis cache configuration.
type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	BusyTTL       time.Duration

	// DisableOnError trips the circuit breaker on the first Redis error,
	// leaving the provider running uncached for the rest of the process.
	DisableOnError bool
}

// DefaultCacheConfig returns default cache configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		RedisAddr:      "localhost:6379",
		BusyTTL:        DefaultBusyTTL,
		DisableOnError: true,
	}
}

// CachedProvider is a read-through Redis cache in front of another
// Provider. A cache miss or a Redis failure falls back to the inner
// provider; the search never fails because the cache did.
type CachedProvider struct {
	inner  Provider
	client *redis.Client
	logger zerolog.Logger
	config CacheConfig

	mu       sync.RWMutex
	disabled bool
}

// NewCachedProvider wraps inner with a Redis cache. When Redis is
// unreachable at startup, the provider runs uncached instead of failing.
func NewCachedProvider(inner Provider, cfg CacheConfig, logger zerolog.Logger) *CachedProvider {
	if cfg.BusyTTL <= 0 {
		cfg.BusyTTL = DefaultBusyTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	p := &CachedProvider{
		inner:  inner,
		logger: logger.With().Str("component", "calendar_cache").Logger(),
		config: cfg,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		p.logger.Warn().Err(err).Msg("Redis unavailable, serving busy intervals uncached")
		p.disabled = true
		return p
	}

	p.client = client
	p.logger.Info().Str("addr", cfg.RedisAddr).Msg("busy-interval cache initialized")
	return p
}

// Close closes the Redis connection.
func (p *CachedProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// IsAvailable returns true if the cache is operational.
func (p *CachedProvider) IsAvailable() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.disabled && p.client != nil
}

// BusyIntervals serves per-participant entries from Redis, fetching only
// the missing participants from the inner provider and back-filling.
func (p *CachedProvider) BusyIntervals(ctx context.Context, participantIDs []string, from, to time.Time) (Snapshot, error) {
	if !p.IsAvailable() {
		return p.inner.BusyIntervals(ctx, participantIDs, from, to)
	}

	snapshot := make(Snapshot, len(participantIDs))
	var misses []string
	for _, id := range participantIDs {
		var intervals []models.BusyInterval
		found, err := p.get(ctx, p.key(id, from, to), &intervals)
		if err != nil {
			return p.inner.BusyIntervals(ctx, participantIDs, from, to)
		}
		if !found {
			misses = append(misses, id)
			continue
		}
		if len(intervals) > 0 {
			snapshot[id] = intervals
		}
	}

	if len(misses) == 0 {
		p.logger.Debug().Int("participants", len(participantIDs)).Msg("busy snapshot served from cache")
		return snapshot, nil
	}

	fetched, err := p.inner.BusyIntervals(ctx, misses, from, to)
	if err != nil {
		return nil, err
	}
	for _, id := range misses {
		intervals := fetched.For(id)
		if len(intervals) > 0 {
			snapshot[id] = intervals
		}
		// Empty results are cached too; "no busy time" is an answer.
		if intervals == nil {
			intervals = []models.BusyInterval{}
		}
		p.set(ctx, p.key(id, from, to), intervals)
	}
	return snapshot, nil
}

// Invalidate drops every cached range for the given participants. Called
// after bookings change their busy intervals.
func (p *CachedProvider) Invalidate(ctx context.Context, participantIDs ...string) {
	if !p.IsAvailable() {
		return
	}
	ids := append([]string(nil), participantIDs...)
	sort.Strings(ids)
	for _, id := range ids {
		if err := p.deletePattern(ctx, busyKeyPrefix+id+":*"); err != nil {
			return
		}
	}
	p.logger.Debug().Strs("participants", ids).Msg("invalidated busy-interval cache")
}

func (p *CachedProvider) key(participantID string, from, to time.Time) string {
	return strings.Join([]string{
		busyKeyPrefix + participantID,
		from.UTC().Format("20060102"),
		to.UTC().Format("20060102"),
	}, ":")
}

func (p *CachedProvider) handleError(err error, operation string) {
	if err == nil || err == redis.Nil {
		return
	}
	p.logger.Debug().Err(err).Str("operation", operation).Msg("cache operation failed")
	if p.config.DisableOnError {
		p.mu.Lock()
		p.disabled = true
		p.mu.Unlock()
		p.logger.Warn().Msg("disabling busy-interval cache due to Redis error")
	}
}

func (p *CachedProvider) get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := p.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		p.handleError(err, "get")
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		p.logger.Debug().Err(err).Str("key", key).Msg("failed to unmarshal cached value")
		return false, nil
	}
	return true, nil
}

func (p *CachedProvider) set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		p.logger.Debug().Err(err).Str("key", key).Msg("marshal cache value")
		return
	}
	if err := p.client.Set(ctx, key, data, p.config.BusyTTL).Err(); err != nil {
		p.handleError(err, "set")
	}
}

func (p *CachedProvider) deletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, nextCursor, err := p.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			p.handleError(err, "scan")
			return err
		}
		if len(keys) > 0 {
			if err := p.client.Del(ctx, keys...).Err(); err != nil {
				p.handleError(err, "delete_batch")
				return err
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			return nil
		}
	}
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
)

var _ CacheInterface = (*RedisCache)(nil)

// RedisCache keeps one set per tag holding the cache keys registered under
// it. Invalidating a tag deletes the registered keys and the set itself.
type RedisCache struct {
	client *redis.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewRedisCache(redisURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	c := new(RedisCache)
	c.client = client
	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c, nil
}

func tagSetKey(tag string) string {
	return "tag:" + tag
}

func (c *RedisCache) Register(ctx context.Context, key string, tags ...string) error {
	ctx, span := c.tracer.Start(ctx, "cache.RedisCache.Register")
	defer span.End()

	pipe := c.client.TxPipeline()
	for _, tag := range tags {
		pipe.SAdd(ctx, tagSetKey(tag), key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to register cache key: %w", err)
	}

	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, tags ...string) error {
	ctx, span := c.tracer.Start(ctx, "cache.RedisCache.Invalidate")
	defer span.End()

	for _, tag := range tags {
		setKey := tagSetKey(tag)

		keys, err := c.client.SMembers(ctx, setKey).Result()
		if err != nil {
			return fmt.Errorf("failed to read tag set %s: %w", tag, err)
		}

		pipe := c.client.TxPipeline()
		if len(keys) > 0 {
			pipe.Del(ctx, keys...)
		}
		pipe.Del(ctx, setKey)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to invalidate tag %s: %w", tag, err)
		}
	}

	return nil
}

func (c *RedisCache) InvalidateUser(ctx context.Context, userID string) error {
	return c.Invalidate(ctx, GlobalTag(KindUser), IDTag(KindUser, userID))
}

func (c *RedisCache) InvalidateOrganization(ctx context.Context, organizationID string) error {
	return c.Invalidate(ctx, GlobalTag(KindOrganization), IDTag(KindOrganization, organizationID))
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

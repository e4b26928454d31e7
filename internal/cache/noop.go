// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package cache

import "context"

// NoopCache satisfies CacheInterface when no cache backend is configured.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (c *NoopCache) Register(context.Context, string, ...string) error { return nil }

func (c *NoopCache) Invalidate(context.Context, ...string) error { return nil }

func (c *NoopCache) InvalidateUser(context.Context, string) error { return nil }

func (c *NoopCache) InvalidateOrganization(context.Context, string) error { return nil }

func (c *NoopCache) Close() error { return nil }

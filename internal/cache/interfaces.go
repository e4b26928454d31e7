// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package cache

import "context"

type CacheInterface interface {
	// Register records a cache key under the given tags so a later
	// invalidation of any tag drops the key.
	Register(ctx context.Context, key string, tags ...string) error
	Invalidate(ctx context.Context, tags ...string) error

	InvalidateUser(ctx context.Context, userID string) error
	InvalidateOrganization(ctx context.Context, organizationID string) error

	Close() error
}

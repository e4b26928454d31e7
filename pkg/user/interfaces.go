// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package user

import (
	"context"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

type ServiceInterface interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
	ListUsers(ctx context.Context, page uint64) ([]*types.User, error)
	UpdateProfile(ctx context.Context, u *types.User, paths []string) (*types.User, error)
	SetRole(ctx context.Context, id, role string) (*types.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	ListUsers(ctx context.Context, offset, limit uint64) ([]*types.User, error)
	UpdateUser(ctx context.Context, u *types.User, paths []string) error
	DeleteUser(ctx context.Context, id string) error
}

type SessionRevokerInterface interface {
	RevokeUserSessions(ctx context.Context, userID string) error
}

type CacheInterface interface {
	InvalidateUser(ctx context.Context, userID string) error
}

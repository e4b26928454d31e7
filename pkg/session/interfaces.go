// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"time"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

type ServiceInterface interface {
	CreateSession(ctx context.Context, userID, ipAddress, userAgent string) (*types.Session, error)
	ResolveSession(ctx context.Context, token string) (*types.Session, *types.User, error)
	ListUserSessions(ctx context.Context, userID string) ([]*types.Session, error)
	RevokeSession(ctx context.Context, userID, sessionID string) error
	RevokeUserSessions(ctx context.Context, userID string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type StorageInterface interface {
	CreateSession(ctx context.Context, s *types.Session) (*types.Session, error)
	GetSessionByToken(ctx context.Context, token string) (*types.Session, error)
	ListSessionsByUserID(ctx context.Context, userID string) ([]*types.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	GetUserByID(ctx context.Context, id string) (*types.User, error)
}

// OrganizationProviderInterface supplies the organization a fresh session
// should start in.
type OrganizationProviderInterface interface {
	GetInitialOrganization(ctx context.Context, userID string) (string, error)
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identityID, email, name string) error
	HandleSessionHook(ctx context.Context, req *SessionHookRequest) (*SessionHookResponse, error)
	HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error)
}

// StorageInterface is the subset of storage the webhook service touches
// directly; sessions and organizations go through their services.
type StorageInterface interface {
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
}

type SessionServiceInterface interface {
	CreateSession(ctx context.Context, userID, ipAddress, userAgent string) (*types.Session, error)
}

type OrganizationServiceInterface interface {
	GetInitialOrganization(ctx context.Context, userID string) (string, error)
	ListUserOrganizations(ctx context.Context, userID string) ([]*types.Organization, error)
}

type CacheInterface interface {
	InvalidateUser(ctx context.Context, userID string) error
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"context"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

type ServiceInterface interface {
	CreateOrganization(ctx context.Context, creatorID, name, slug string) (*types.Organization, error)
	GetOrganization(ctx context.Context, id string) (*types.Organization, error)
	ListOrganizations(ctx context.Context) ([]*types.Organization, error)
	ListUserOrganizations(ctx context.Context, userID string) ([]*types.Organization, error)
	UpdateOrganization(ctx context.Context, o *types.Organization, paths []string) (*types.Organization, error)
	DeleteOrganization(ctx context.Context, id string) error

	SetActiveOrganization(ctx context.Context, userID, organizationID string) (*types.User, error)
	ClearActiveOrganization(ctx context.Context, userID string) (*types.User, error)
	GetInitialOrganization(ctx context.Context, userID string) (string, error)

	ListMembers(ctx context.Context, organizationID string) ([]*types.OrganizationUser, error)
	UpdateMemberRole(ctx context.Context, organizationID, userID, role string) (*types.Member, error)
	RemoveMember(ctx context.Context, organizationID, userID string) error
}

type StorageInterface interface {
	CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	ListOrganizations(ctx context.Context) ([]*types.Organization, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)
	UpdateOrganization(ctx context.Context, o *types.Organization, paths []string) error
	DeleteOrganization(ctx context.Context, id string) error
	ClearActiveOrganizationRefs(ctx context.Context, organizationID string) error

	AddMember(ctx context.Context, organizationID, userID, role string) (string, error)
	GetMember(ctx context.Context, organizationID, userID string) (*types.Member, error)
	ListOrganizationUsers(ctx context.Context, organizationID string) ([]*types.OrganizationUser, error)
	UpdateMemberRole(ctx context.Context, organizationID, userID, role string) error
	RemoveMember(ctx context.Context, organizationID, userID string) error

	GetUserByID(ctx context.Context, id string) (*types.User, error)
	SetUserActiveOrganization(ctx context.Context, userID string, organizationID *string) error
	UpdateSessionsActiveOrganization(ctx context.Context, userID string, organizationID *string) error
}

type CacheInterface interface {
	InvalidateUser(ctx context.Context, userID string) error
	InvalidateOrganization(ctx context.Context, organizationID string) error
}

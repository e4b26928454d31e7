// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

type StorageInterface interface {
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	ListUsers(ctx context.Context, offset, limit uint64) ([]*types.User, error)
	UpdateUser(ctx context.Context, u *types.User, paths []string) error
	SetUserActiveOrganization(ctx context.Context, userID string, organizationID *string) error
	DeleteUser(ctx context.Context, id string) error

	CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*types.Organization, error)
	ListOrganizations(ctx context.Context) ([]*types.Organization, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)
	UpdateOrganization(ctx context.Context, o *types.Organization, paths []string) error
	DeleteOrganization(ctx context.Context, id string) error
	ClearActiveOrganizationRefs(ctx context.Context, organizationID string) error

	AddMember(ctx context.Context, organizationID, userID, role string) (string, error)
	GetMember(ctx context.Context, organizationID, userID string) (*types.Member, error)
	ListMembersByOrganizationID(ctx context.Context, organizationID string) ([]*types.Member, error)
	ListOrganizationUsers(ctx context.Context, organizationID string) ([]*types.OrganizationUser, error)
	UpdateMemberRole(ctx context.Context, organizationID, userID, role string) error
	RemoveMember(ctx context.Context, organizationID, userID string) error

	CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error)
	GetInvitationByID(ctx context.Context, id string) (*types.Invitation, error)
	ListInvitationsByOrganizationID(ctx context.Context, organizationID string) ([]*types.Invitation, error)
	UpdateInvitationStatus(ctx context.Context, id, from, to string) error

	CreateSession(ctx context.Context, s *types.Session) (*types.Session, error)
	GetSessionByToken(ctx context.Context, token string) (*types.Session, error)
	ListSessionsByUserID(ctx context.Context, userID string) ([]*types.Session, error)
	UpdateSessionsActiveOrganization(ctx context.Context, userID string, organizationID *string) error
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

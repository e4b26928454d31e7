// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package invitation

import (
	"context"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

type ServiceInterface interface {
	CreateInvitation(ctx context.Context, organizationID, inviterID, email, role string) (*types.Invitation, string, string, error)
	GetInvitation(ctx context.Context, id string) (*types.Invitation, error)
	ListInvitations(ctx context.Context, organizationID string) ([]*types.Invitation, error)
	AcceptInvitation(ctx context.Context, id, userID, email string) (*types.Invitation, error)
	RejectInvitation(ctx context.Context, id, email string) (*types.Invitation, error)
	CancelInvitation(ctx context.Context, id, organizationID string) (*types.Invitation, error)
}

type StorageInterface interface {
	CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error)
	GetInvitationByID(ctx context.Context, id string) (*types.Invitation, error)
	ListInvitationsByOrganizationID(ctx context.Context, organizationID string) ([]*types.Invitation, error)
	UpdateInvitationStatus(ctx context.Context, id, from, to string) error

	AddMember(ctx context.Context, organizationID, userID, role string) (string, error)
}

type KratosClientInterface interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	CreateIdentity(ctx context.Context, email string) (string, error)
	CreateRecoveryLink(ctx context.Context, identityID string, expiresIn string) (string, string, error)
}

type CacheInterface interface {
	InvalidateOrganization(ctx context.Context, organizationID string) error
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

// Package invitation implements the organization invitation lifecycle:
// create, accept, reject, cancel. Each invitation leaves the pending state
// exactly once; concurrent transitions lose with a conflict.
package invitation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/authorization"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/db"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/storage"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage  StorageInterface
	kratos   KratosClientInterface
	cache    CacheInterface
	db       db.DBClientInterface
	lifetime time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	kratos KratosClientInterface,
	cache CacheInterface,
	dbClient db.DBClientInterface,
	lifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		kratos:   kratos,
		cache:    cache,
		db:       dbClient,
		lifetime: lifetime,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// CreateInvitation records the invitation and provisions an identity for
// the invitee when none exists yet. It returns the invitation plus the
// recovery link and code the invitee uses to set credentials.
func (s *Service) CreateInvitation(ctx context.Context, organizationID, inviterID, email, role string) (*types.Invitation, string, string, error) {
	ctx, span := s.tracer.Start(ctx, "invitation.Service.CreateInvitation")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", "", errcode.New(errcode.Validation, "Email is required.")
	}
	if !authorization.ValidOrgRole(role) {
		return nil, "", "", errcode.New(errcode.Validation, "Unknown role.")
	}

	identityID, err := s.kratos.GetIdentityIDByEmail(ctx, email)
	if err != nil {
		s.logger.Errorf("failed to check identity for %s: %v", email, err)
		return nil, "", "", errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}
	if identityID == "" {
		identityID, err = s.kratos.CreateIdentity(ctx, email)
		if err != nil {
			s.logger.Errorf("failed to provision identity for %s: %v", email, err)
			return nil, "", "", errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
		}
	}

	created, err := s.storage.CreateInvitation(ctx, &types.Invitation{
		OrganizationID: organizationID,
		Email:          email,
		Role:           authorization.ParseRoleSet(role).String(),
		ExpiresAt:      time.Now().Add(s.lifetime),
		InviterID:      inviterID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, "", "", errcode.New(errcode.NotFound, "Organization not found.")
		}
		s.logger.Errorf("failed to create invitation for %s: %v", email, err)
		return nil, "", "", errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	link, code, err := s.kratos.CreateRecoveryLink(ctx, identityID, s.lifetime.String())
	if err != nil {
		s.logger.Errorf("failed to create recovery link for %s: %v", email, err)
		return nil, "", "", errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	if err := s.cache.InvalidateOrganization(ctx, organizationID); err != nil {
		s.logger.Warnf("failed to invalidate organization cache: %v", err)
	}

	return created, link, code, nil
}

func (s *Service) GetInvitation(ctx context.Context, id string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitation.Service.GetInvitation")
	defer span.End()

	inv, err := s.storage.GetInvitationByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errcode.New(errcode.NotFound, "Invitation not found.")
		}
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	return inv, nil
}

func (s *Service) ListInvitations(ctx context.Context, organizationID string) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitation.Service.ListInvitations")
	defer span.End()

	invitations, err := s.storage.ListInvitationsByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	return invitations, nil
}

// AcceptInvitation turns a pending invitation into a membership. The
// status flip and the member insert share a transaction, and the flip is
// guarded on the pending status so a rival accept or cancel loses cleanly.
func (s *Service) AcceptInvitation(ctx context.Context, id, userID, email string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitation.Service.AcceptInvitation")
	defer span.End()

	if userID == "" {
		return nil, errcode.New(errcode.Unauthenticated, "Unauthenticated.")
	}

	var inv *types.Invitation
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		inv, err = s.storage.GetInvitationByID(txCtx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errcode.New(errcode.NotFound, "Invitation not found.")
			}
			return err
		}

		if !strings.EqualFold(inv.Email, email) {
			return errcode.New(errcode.Forbidden, "This invitation was issued to a different email.")
		}
		if inv.Status != types.InvitationPending {
			return errcode.New(errcode.Conflict, "Invitation is no longer pending.")
		}
		if inv.Expired(time.Now()) {
			return errcode.New(errcode.Validation, "Invitation has expired.")
		}

		if err := s.storage.UpdateInvitationStatus(txCtx, id, types.InvitationPending, types.InvitationAccepted); err != nil {
			// Lost the race against another transition.
			if errors.Is(err, storage.ErrNotFound) {
				return errcode.New(errcode.Conflict, "Invitation is no longer pending.")
			}
			return err
		}

		if _, err := s.storage.AddMember(txCtx, inv.OrganizationID, userID, inv.Role); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return errcode.New(errcode.Conflict, "Already a member of this organization.")
			}
			if errors.Is(err, storage.ErrForeignKeyViolation) {
				return errcode.New(errcode.NotFound, "Organization not found.")
			}
			return err
		}

		inv.Status = types.InvitationAccepted
		return nil
	})
	if err != nil {
		var appErr *errcode.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		s.logger.Errorf("failed to accept invitation %s: %v", id, err)
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	if err := s.cache.InvalidateOrganization(ctx, inv.OrganizationID); err != nil {
		s.logger.Warnf("failed to invalidate organization cache: %v", err)
	}

	return inv, nil
}

func (s *Service) RejectInvitation(ctx context.Context, id, email string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitation.Service.RejectInvitation")
	defer span.End()

	return s.transition(ctx, id, types.InvitationRejected, func(inv *types.Invitation) error {
		if !strings.EqualFold(inv.Email, email) {
			return errcode.New(errcode.Forbidden, "This invitation was issued to a different email.")
		}
		return nil
	})
}

// CancelInvitation is the inviter-side withdrawal. The organization id must
// match so an admin of one organization cannot cancel another's invitation.
func (s *Service) CancelInvitation(ctx context.Context, id, organizationID string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitation.Service.CancelInvitation")
	defer span.End()

	return s.transition(ctx, id, types.InvitationCanceled, func(inv *types.Invitation) error {
		if inv.OrganizationID != organizationID {
			return errcode.New(errcode.NotFound, "Invitation not found.")
		}
		return nil
	})
}

func (s *Service) transition(ctx context.Context, id, to string, check func(*types.Invitation) error) (*types.Invitation, error) {
	inv, err := s.storage.GetInvitationByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errcode.New(errcode.NotFound, "Invitation not found.")
		}
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	if err := check(inv); err != nil {
		return nil, err
	}
	if inv.Status != types.InvitationPending {
		return nil, errcode.New(errcode.Conflict, "Invitation is no longer pending.")
	}

	if err := s.storage.UpdateInvitationStatus(ctx, id, types.InvitationPending, to); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errcode.New(errcode.Conflict, "Invitation is no longer pending.")
		}
		s.logger.Errorf("failed to update invitation %s: %v", id, err)
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	inv.Status = to

	if err := s.cache.InvalidateOrganization(ctx, inv.OrganizationID); err != nil {
		s.logger.Warnf("failed to invalidate organization cache: %v", err)
	}

	return inv, nil
}

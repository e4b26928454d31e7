// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

// Package organization implements organizations, memberships and the
// active-organization pointer that scopes every signed-in request.
package organization

import (
	"context"
	"errors"
	"fmt"
	"strings"

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
	storage StorageInterface
	cache   CacheInterface
	db      db.DBClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	cache CacheInterface,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		cache:   cache,
		db:      dbClient,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// unexpected downgrades an infrastructure error to the closed taxonomy after
// logging it with its scope and identifiers. Taxonomy errors pass through.
func (s *Service) unexpected(scope string, err error, kv ...interface{}) error {
	var appErr *errcode.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	s.logger.Errorf("%s failed%s: %v", scope, b.String(), err)
	return errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
}

func (s *Service) CreateOrganization(ctx context.Context, creatorID, name, slug string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.CreateOrganization")
	defer span.End()

	if creatorID == "" {
		return nil, errcode.New(errcode.Unauthenticated, "Unauthenticated.")
	}
	if name == "" || slug == "" {
		return nil, errcode.New(errcode.Validation, "Name and slug are required.")
	}

	var created *types.Organization
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.storage.CreateOrganization(txCtx, &types.Organization{Name: name, Slug: slug})
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return errcode.New(errcode.Conflict, "An organization with this slug already exists.")
			}
			return err
		}

		_, err = s.storage.AddMember(txCtx, created.ID, creatorID, string(authorization.RoleOwner))
		if err != nil {
			if errors.Is(err, storage.ErrForeignKeyViolation) {
				return errcode.New(errcode.NotFound, "User not found.")
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, s.unexpected("organization.CreateOrganization", err, "user_id", creatorID, "slug", slug)
	}

	if err := s.cache.InvalidateOrganization(ctx, created.ID); err != nil {
		s.logger.Warnf("failed to invalidate organization cache: %v", err)
	}

	return created, nil
}

func (s *Service) GetOrganization(ctx context.Context, id string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.GetOrganization")
	defer span.End()

	org, err := s.storage.GetOrganizationByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errcode.New(errcode.NotFound, "Organization not found.")
		}
		return nil, s.unexpected("organization.GetOrganization", err, "organization_id", id)
	}

	return org, nil
}

func (s *Service) ListOrganizations(ctx context.Context) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.ListOrganizations")
	defer span.End()

	orgs, err := s.storage.ListOrganizations(ctx)
	if err != nil {
		return nil, s.unexpected("organization.ListOrganizations", err)
	}

	return orgs, nil
}

func (s *Service) ListUserOrganizations(ctx context.Context, userID string) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.ListUserOrganizations")
	defer span.End()

	if userID == "" {
		return nil, errcode.New(errcode.Unauthenticated, "Unauthenticated.")
	}

	orgs, err := s.storage.ListOrganizationsByUserID(ctx, userID)
	if err != nil {
		return nil, s.unexpected("organization.ListUserOrganizations", err, "user_id", userID)
	}

	return orgs, nil
}

func (s *Service) UpdateOrganization(ctx context.Context, o *types.Organization, paths []string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.UpdateOrganization")
	defer span.End()

	if err := s.storage.UpdateOrganization(ctx, o, paths); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, errcode.New(errcode.NotFound, "Organization not found.")
		case errors.Is(err, storage.ErrDuplicateKey):
			return nil, errcode.New(errcode.Conflict, "An organization with this slug already exists.")
		}
		return nil, s.unexpected("organization.UpdateOrganization", err, "organization_id", o.ID)
	}

	updated, err := s.storage.GetOrganizationByID(ctx, o.ID)
	if err != nil {
		return nil, s.unexpected("organization.UpdateOrganization", err, "organization_id", o.ID)
	}

	if err := s.cache.InvalidateOrganization(ctx, o.ID); err != nil {
		s.logger.Warnf("failed to invalidate organization cache: %v", err)
	}

	return updated, nil
}

// DeleteOrganization removes the organization and detaches every user whose
// active-organization pointer referenced it, in one transaction. Memberships
// and invitations go with the row via FK cascade.
func (s *Service) DeleteOrganization(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "organization.Service.DeleteOrganization")
	defer span.End()

	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.storage.DeleteOrganization(txCtx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errcode.New(errcode.NotFound, "Organization not found.")
			}
			return err
		}
		return s.storage.ClearActiveOrganizationRefs(txCtx, id)
	})
	if err != nil {
		return s.unexpected("organization.DeleteOrganization", err, "organization_id", id)
	}

	if err := s.cache.InvalidateOrganization(ctx, id); err != nil {
		s.logger.Warnf("failed to invalidate organization cache: %v", err)
	}

	return nil
}

// SetActiveOrganization validates membership and flips the pointer in the
// same transaction, so the pointer can never land on an organization the
// user just lost access to.
func (s *Service) SetActiveOrganization(ctx context.Context, userID, organizationID string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.SetActiveOrganization")
	defer span.End()

	if userID == "" {
		return nil, errcode.New(errcode.Unauthenticated, "Unauthenticated.")
	}
	if organizationID == "" {
		return nil, errcode.New(errcode.Validation, "Organization id is required.")
	}

	var updated *types.User
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.storage.GetMember(txCtx, organizationID, userID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				s.logger.Security().AuthzFailure(userID, "organization:set-active")
				return errcode.New(errcode.Forbidden, "Not a member of this organization.")
			}
			return err
		}

		if err := s.storage.SetUserActiveOrganization(txCtx, userID, &organizationID); err != nil {
			return err
		}

		// Sessions carry their own snapshot; without this rewrite a live
		// session would keep steering the user to onboarding.
		if err := s.storage.UpdateSessionsActiveOrganization(txCtx, userID, &organizationID); err != nil {
			return err
		}

		var err error
		updated, err = s.storage.GetUserByID(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, s.unexpected("organization.SetActiveOrganization", err, "user_id", userID, "organization_id", organizationID)
	}

	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.logger.Warnf("failed to invalidate user cache: %v", err)
	}

	return updated, nil
}

// ClearActiveOrganization nulls the pointer. Clearing an already-empty
// pointer succeeds; only a missing user is an error.
func (s *Service) ClearActiveOrganization(ctx context.Context, userID string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.ClearActiveOrganization")
	defer span.End()

	if userID == "" {
		return nil, errcode.New(errcode.Unauthenticated, "Unauthenticated.")
	}

	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.storage.SetUserActiveOrganization(txCtx, userID, nil); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errcode.New(errcode.NotFound, "User not found.")
			}
			return err
		}
		return s.storage.UpdateSessionsActiveOrganization(txCtx, userID, nil)
	})
	if err != nil {
		return nil, s.unexpected("organization.ClearActiveOrganization", err, "user_id", userID)
	}

	updated, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, s.unexpected("organization.ClearActiveOrganization", err, "user_id", userID)
	}

	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.logger.Warnf("failed to invalidate user cache: %v", err)
	}

	return updated, nil
}

// GetInitialOrganization picks the organization a fresh session should
// activate. The stored pointer wins only if the membership still exists;
// a stale pointer falls through to NotFound instead of an error, so a
// deleted organization can never wedge sign-in.
func (s *Service) GetInitialOrganization(ctx context.Context, userID string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.GetInitialOrganization")
	defer span.End()

	if userID == "" {
		return "", errcode.New(errcode.Unauthenticated, "Unauthenticated.")
	}

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", errcode.New(errcode.NotFound, "User not found.")
		}
		return "", s.unexpected("organization.GetInitialOrganization", err, "user_id", userID)
	}

	if user.ActiveOrganizationID == nil || *user.ActiveOrganizationID == "" {
		return "", errcode.New(errcode.NotFound, "No initial organization.")
	}

	if _, err := s.storage.GetMember(ctx, *user.ActiveOrganizationID, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", errcode.New(errcode.NotFound, "No initial organization.")
		}
		return "", s.unexpected("organization.GetInitialOrganization", err, "user_id", userID, "organization_id", *user.ActiveOrganizationID)
	}

	return *user.ActiveOrganizationID, nil
}

func (s *Service) ListMembers(ctx context.Context, organizationID string) ([]*types.OrganizationUser, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.ListMembers")
	defer span.End()

	users, err := s.storage.ListOrganizationUsers(ctx, organizationID)
	if err != nil {
		return nil, s.unexpected("organization.ListMembers", err, "organization_id", organizationID)
	}

	return users, nil
}

func (s *Service) UpdateMemberRole(ctx context.Context, organizationID, userID, role string) (*types.Member, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.UpdateMemberRole")
	defer span.End()

	if !authorization.ValidOrgRole(role) {
		return nil, errcode.New(errcode.Validation, "Unknown role.")
	}
	// Normalize to the canonical comma-joined form before it hits storage.
	normalized := authorization.ParseRoleSet(role).String()

	if err := s.storage.UpdateMemberRole(ctx, organizationID, userID, normalized); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errcode.New(errcode.NotFound, "Member not found.")
		}
		return nil, s.unexpected("organization.UpdateMemberRole", err, "organization_id", organizationID, "user_id", userID)
	}

	member, err := s.storage.GetMember(ctx, organizationID, userID)
	if err != nil {
		return nil, s.unexpected("organization.UpdateMemberRole", err, "organization_id", organizationID, "user_id", userID)
	}

	if err := s.cache.InvalidateOrganization(ctx, organizationID); err != nil {
		s.logger.Warnf("failed to invalidate organization cache: %v", err)
	}

	return member, nil
}

// RemoveMember drops the membership and, when the removed user's active
// pointer referenced this organization, clears it in the same transaction.
func (s *Service) RemoveMember(ctx context.Context, organizationID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "organization.Service.RemoveMember")
	defer span.End()

	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.storage.RemoveMember(txCtx, organizationID, userID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errcode.New(errcode.NotFound, "Member not found.")
			}
			return err
		}

		user, err := s.storage.GetUserByID(txCtx, userID)
		if err != nil {
			// Membership may outlive the user row mid-delete; nothing to clear.
			if errors.Is(err, storage.ErrNotFound) {
				return nil
			}
			return err
		}

		if user.ActiveOrganizationID != nil && *user.ActiveOrganizationID == organizationID {
			return s.storage.SetUserActiveOrganization(txCtx, userID, nil)
		}
		return nil
	})
	if err != nil {
		return s.unexpected("organization.RemoveMember", err, "organization_id", organizationID, "user_id", userID)
	}

	if err := s.cache.InvalidateOrganization(ctx, organizationID); err != nil {
		s.logger.Warnf("failed to invalidate organization cache: %v", err)
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.logger.Warnf("failed to invalidate user cache: %v", err)
	}

	return nil
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

// Package webhooks receives callbacks from the identity stack: Kratos
// reports registrations and logins, Hydra asks for extra token claims.
package webhooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/storage"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage       StorageInterface
	sessions      SessionServiceInterface
	organizations OrganizationServiceInterface
	cache         CacheInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	sessions SessionServiceInterface,
	organizations OrganizationServiceInterface,
	cache CacheInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:       storage,
		sessions:      sessions,
		organizations: organizations,
		cache:         cache,
		tracer:        tracer,
		monitor:       monitor,
		logger:        logger,
	}
}

// HandleRegistration mirrors a fresh Kratos identity into the users table.
// Replayed hooks are idempotent: an existing row is left untouched.
func (s *Service) HandleRegistration(ctx context.Context, identityID, email, name string) error {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	if identityID == "" || email == "" {
		return fmt.Errorf("identity ID or email is empty")
	}

	_, err := s.storage.CreateUser(ctx, &types.User{
		ID:    identityID,
		Email: email,
		Name:  name,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			s.logger.Debugf("registration hook replayed for identity %s", identityID)
			return nil
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.cache.InvalidateUser(ctx, identityID); err != nil {
		s.logger.Warnf("failed to invalidate user cache: %v", err)
	}

	s.logger.Infof("provisioned user %s from registration hook", identityID)
	return nil
}

// HandleSessionHook issues a session for a login Kratos just completed.
// When the registration hook was missed the user row is recreated here, so
// a login can never fail on a missing mirror row.
func (s *Service) HandleSessionHook(ctx context.Context, req *SessionHookRequest) (*SessionHookResponse, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleSessionHook")
	defer span.End()

	identity := req.Identity
	if identity.ID == "" {
		return nil, fmt.Errorf("identity ID is empty")
	}

	if _, err := s.storage.GetUserByID(ctx, identity.ID); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		if err := s.HandleRegistration(ctx, identity.ID, identity.Traits.Email, identity.Traits.Name); err != nil {
			return nil, err
		}
	}

	sess, err := s.sessions.CreateSession(ctx, identity.ID, req.IPAddress, req.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	resp := &SessionHookResponse{
		SessionToken: sess.Token,
		ExpiresAt:    sess.ExpiresAt,
	}
	if sess.ActiveOrganizationID != nil {
		resp.ActiveOrganizationID = *sess.ActiveOrganizationID
	}

	return resp, nil
}

// HandleTokenHook decorates Hydra-issued tokens with the caller's
// organization memberships and, when one resolves, the active organization.
func (s *Service) HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleTokenHook")
	defer span.End()

	if req.Session == nil {
		return nil, fmt.Errorf("token hook request has no session")
	}

	subject := req.Session.GetSubject()
	if subject == "" {
		return nil, fmt.Errorf("token hook session has no subject")
	}

	orgs, err := s.organizations.ListUserOrganizations(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations for %s: %w", subject, err)
	}

	resp := &TokenHookResponse{}
	if len(orgs) > 0 {
		ids := make([]string, len(orgs))
		for i, o := range orgs {
			ids[i] = o.ID
		}
		resp.Session.IDToken = map[string]interface{}{"organizations": ids}
		resp.Session.AccessToken = map[string]interface{}{"organizations": ids}
	}

	if orgID, err := s.organizations.GetInitialOrganization(ctx, subject); err == nil {
		if resp.Session.IDToken == nil {
			resp.Session.IDToken = map[string]interface{}{}
			resp.Session.AccessToken = map[string]interface{}{}
		}
		resp.Session.IDToken["active_organization_id"] = orgID
		resp.Session.AccessToken["active_organization_id"] = orgID
	} else if !errcode.IsCode(err, errcode.NotFound) {
		// Claims are an enrichment; token issuance proceeds without them.
		s.logger.Warnf("failed to resolve active organization for %s: %v", subject, err)
	}

	return resp, nil
}

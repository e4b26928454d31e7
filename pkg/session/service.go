// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

// Package session manages the server-side session records issued when the
// identity provider reports a successful login. Sessions carry an opaque
// random token and a snapshot of the user's active organization, hydrated
// at creation time.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

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
	organizations OrganizationProviderInterface
	lifetime      time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	organizations OrganizationProviderInterface,
	lifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:       storage,
		organizations: organizations,
		lifetime:      lifetime,
		tracer:        tracer,
		monitor:       monitor,
		logger:        logger,
	}
}

// generateToken returns a 256-bit random token in URL-safe base64. The
// token is the only secret; session ids are plain UUIDs.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CreateSession issues a session for a user that just authenticated.
// Hydration of the active-organization snapshot is best effort: any failure
// there logs and proceeds, it never blocks login.
func (s *Service) CreateSession(ctx context.Context, userID, ipAddress, userAgent string) (*types.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.Service.CreateSession")
	defer span.End()

	if userID == "" {
		return nil, errcode.New(errcode.Validation, "User id is required.")
	}

	token, err := generateToken()
	if err != nil {
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	sess := &types.Session{
		ID:        id.String(),
		Token:     token,
		UserID:    userID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(s.lifetime),
	}

	if orgID, err := s.organizations.GetInitialOrganization(ctx, userID); err == nil {
		sess.ActiveOrganizationID = &orgID
	} else if !errcode.IsCode(err, errcode.NotFound) {
		s.logger.Errorf("failed to hydrate session for user %s: %v", userID, err)
	}

	created, err := s.storage.CreateSession(ctx, sess)
	if err != nil {
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, errcode.New(errcode.NotFound, "User not found.")
		}
		s.logger.Errorf("failed to create session for user %s: %v", userID, err)
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	s.logger.Security().SessionCreated(userID)

	return created, nil
}

// ResolveSession returns the live session and its user for a token.
// Expired sessions are deleted on sight and report NotFound.
func (s *Service) ResolveSession(ctx context.Context, token string) (*types.Session, *types.User, error) {
	ctx, span := s.tracer.Start(ctx, "session.Service.ResolveSession")
	defer span.End()

	if token == "" {
		return nil, nil, errcode.New(errcode.NotFound, "Session not found.")
	}

	sess, err := s.storage.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, errcode.New(errcode.NotFound, "Session not found.")
		}
		return nil, nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	if time.Now().After(sess.ExpiresAt) {
		if err := s.storage.DeleteSession(ctx, sess.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warnf("failed to delete expired session %s: %v", sess.ID, err)
		}
		return nil, nil, errcode.New(errcode.NotFound, "Session not found.")
	}

	user, err := s.storage.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, errcode.New(errcode.NotFound, "Session not found.")
		}
		return nil, nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	return sess, user, nil
}

func (s *Service) ListUserSessions(ctx context.Context, userID string) ([]*types.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.Service.ListUserSessions")
	defer span.End()

	if userID == "" {
		return nil, errcode.New(errcode.Unauthenticated, "Unauthenticated.")
	}

	sessions, err := s.storage.ListSessionsByUserID(ctx, userID)
	if err != nil {
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	return sessions, nil
}

// RevokeSession deletes one session. Callers may only revoke their own;
// a platform admin passes the session owner's id explicitly.
func (s *Service) RevokeSession(ctx context.Context, userID, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "session.Service.RevokeSession")
	defer span.End()

	sessions, err := s.storage.ListSessionsByUserID(ctx, userID)
	if err != nil {
		return errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	owned := false
	for _, sess := range sessions {
		if sess.ID == sessionID {
			owned = true
			break
		}
	}
	if !owned {
		return errcode.New(errcode.NotFound, "Session not found.")
	}

	if err := s.storage.DeleteSession(ctx, sessionID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errcode.New(errcode.NotFound, "Session not found.")
		}
		return errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	s.logger.Security().SessionRevoked(userID)

	return nil
}

func (s *Service) RevokeUserSessions(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "session.Service.RevokeUserSessions")
	defer span.End()

	if err := s.storage.DeleteSessionsByUserID(ctx, userID); err != nil {
		return errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	s.logger.Security().SessionRevoked(userID)

	return nil
}

// PurgeExpired removes expired session rows. Run periodically; resolution
// already treats expired rows as absent, this just reclaims space.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "session.Service.PurgeExpired")
	defer span.End()

	n, err := s.storage.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		return 0, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	if n > 0 {
		s.logger.Infof("purged %d expired sessions", n)
	}

	return n, nil
}

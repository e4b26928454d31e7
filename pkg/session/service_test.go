// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/storage"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

type serviceMocks struct {
	storage       *MockStorageInterface
	organizations *MockOrganizationProviderInterface
	tracer        *MockTracingInterface
	monitor       *MockMonitorInterface
	logger        *MockLoggerInterface
}

func newServiceMocks(ctrl *gomock.Controller, span string) serviceMocks {
	m := serviceMocks{
		storage:       NewMockStorageInterface(ctrl),
		organizations: NewMockOrganizationProviderInterface(ctrl),
		tracer:        NewMockTracingInterface(ctrl),
		monitor:       NewMockMonitorInterface(ctrl),
		logger:        NewMockLoggerInterface(ctrl),
	}
	m.tracer.EXPECT().Start(gomock.Any(), span).
		Return(context.Background(), trace.SpanFromContext(context.Background()))
	return m
}

func (m serviceMocks) service(lifetime time.Duration) *Service {
	return NewService(m.storage, m.organizations, lifetime, m.tracer, m.monitor, m.logger)
}

func (m serviceMocks) expectSessionCreated(ctrl *gomock.Controller, userID string) {
	security := NewMockSecurityLoggerInterface(ctrl)
	security.EXPECT().SessionCreated(userID)
	m.logger.EXPECT().Security().Return(security)
}

func TestService_CreateSession(t *testing.T) {
	userID := "user-1"
	orgID := "org-1"

	t.Run("hydrates active organization", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.CreateSession")
		m.organizations.EXPECT().GetInitialOrganization(gomock.Any(), userID).Return(orgID, nil)
		m.storage.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, sess *types.Session) (*types.Session, error) {
				if sess.UserID != userID {
					t.Errorf("expected user %s, got %s", userID, sess.UserID)
				}
				if sess.Token == "" {
					t.Error("expected a token")
				}
				if sess.ActiveOrganizationID == nil || *sess.ActiveOrganizationID != orgID {
					t.Errorf("expected active organization %s, got %v", orgID, sess.ActiveOrganizationID)
				}
				return sess, nil
			},
		)
		m.expectSessionCreated(ctrl, userID)

		sess, err := m.service(time.Hour).CreateSession(context.Background(), userID, "10.0.0.1", "curl")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if time.Until(sess.ExpiresAt) > time.Hour {
			t.Errorf("expiry beyond configured lifetime: %v", sess.ExpiresAt)
		}
	})

	t.Run("no initial organization leaves snapshot empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.CreateSession")
		m.organizations.EXPECT().GetInitialOrganization(gomock.Any(), userID).
			Return("", errcode.New(errcode.NotFound, "No initial organization."))
		m.storage.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, sess *types.Session) (*types.Session, error) {
				if sess.ActiveOrganizationID != nil {
					t.Errorf("expected empty snapshot, got %v", *sess.ActiveOrganizationID)
				}
				return sess, nil
			},
		)
		m.expectSessionCreated(ctrl, userID)

		if _, err := m.service(time.Hour).CreateSession(context.Background(), userID, "", ""); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("hydration failure never blocks login", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.CreateSession")
		m.organizations.EXPECT().GetInitialOrganization(gomock.Any(), userID).
			Return("", errors.New("connection refused"))
		m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
		m.storage.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, sess *types.Session) (*types.Session, error) {
				return sess, nil
			},
		)
		m.expectSessionCreated(ctrl, userID)

		if _, err := m.service(time.Hour).CreateSession(context.Background(), userID, "", ""); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.CreateSession")
		m.organizations.EXPECT().GetInitialOrganization(gomock.Any(), userID).
			Return("", errcode.New(errcode.NotFound, "User not found."))
		m.storage.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
			Return(nil, storage.ErrForeignKeyViolation)

		_, err := m.service(time.Hour).CreateSession(context.Background(), userID, "", "")

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})

	t.Run("missing user id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.CreateSession")

		_, err := m.service(time.Hour).CreateSession(context.Background(), "", "", "")

		if !errcode.IsCode(err, errcode.Validation) {
			t.Errorf("expected VALIDATION, got %v", err)
		}
	})
}

func TestService_ResolveSession(t *testing.T) {
	token := "opaque-token"
	userID := "user-1"

	t.Run("live session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.ResolveSession")
		m.storage.EXPECT().GetSessionByToken(gomock.Any(), token).
			Return(&types.Session{ID: "sess-1", Token: token, UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil)
		m.storage.EXPECT().GetUserByID(gomock.Any(), userID).
			Return(&types.User{ID: userID, Email: "a@example.com"}, nil)

		sess, user, err := m.service(time.Hour).ResolveSession(context.Background(), token)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sess.ID != "sess-1" || user.ID != userID {
			t.Errorf("unexpected resolution: %v %v", sess, user)
		}
	})

	t.Run("expired session is deleted on sight", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.ResolveSession")
		m.storage.EXPECT().GetSessionByToken(gomock.Any(), token).
			Return(&types.Session{ID: "sess-1", Token: token, UserID: userID, ExpiresAt: time.Now().Add(-time.Minute)}, nil)
		m.storage.EXPECT().DeleteSession(gomock.Any(), "sess-1").Return(nil)

		_, _, err := m.service(time.Hour).ResolveSession(context.Background(), token)

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.ResolveSession")
		m.storage.EXPECT().GetSessionByToken(gomock.Any(), token).Return(nil, storage.ErrNotFound)

		_, _, err := m.service(time.Hour).ResolveSession(context.Background(), token)

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})

	t.Run("user deleted behind the session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.ResolveSession")
		m.storage.EXPECT().GetSessionByToken(gomock.Any(), token).
			Return(&types.Session{ID: "sess-1", Token: token, UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil)
		m.storage.EXPECT().GetUserByID(gomock.Any(), userID).Return(nil, storage.ErrNotFound)

		_, _, err := m.service(time.Hour).ResolveSession(context.Background(), token)

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.ResolveSession")

		_, _, err := m.service(time.Hour).ResolveSession(context.Background(), "")

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})
}

func TestService_RevokeSession(t *testing.T) {
	userID := "user-1"

	t.Run("revokes own session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.RevokeSession")
		m.storage.EXPECT().ListSessionsByUserID(gomock.Any(), userID).
			Return([]*types.Session{{ID: "sess-1", UserID: userID}}, nil)
		m.storage.EXPECT().DeleteSession(gomock.Any(), "sess-1").Return(nil)
		security := NewMockSecurityLoggerInterface(ctrl)
		security.EXPECT().SessionRevoked(userID)
		m.logger.EXPECT().Security().Return(security)

		if err := m.service(time.Hour).RevokeSession(context.Background(), userID, "sess-1"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("cannot revoke another user's session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.RevokeSession")
		m.storage.EXPECT().ListSessionsByUserID(gomock.Any(), userID).
			Return([]*types.Session{{ID: "sess-1", UserID: userID}}, nil)

		err := m.service(time.Hour).RevokeSession(context.Background(), userID, "sess-2")

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})
}

func TestService_PurgeExpired(t *testing.T) {
	t.Run("reports purged count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.PurgeExpired")
		m.storage.EXPECT().DeleteExpiredSessions(gomock.Any(), gomock.Any()).Return(int64(3), nil)
		m.logger.EXPECT().Infof(gomock.Any(), gomock.Any())

		n, err := m.service(time.Hour).PurgeExpired(context.Background())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 3 {
			t.Errorf("expected 3, got %d", n)
		}
	})

	t.Run("quiet when nothing expired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "session.Service.PurgeExpired")
		m.storage.EXPECT().DeleteExpiredSessions(gomock.Any(), gomock.Any()).Return(int64(0), nil)

		if _, err := m.service(time.Hour).PurgeExpired(context.Background()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

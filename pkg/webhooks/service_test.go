// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ory/hydra/v2/oauth2"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/storage"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

type serviceMocks struct {
	storage       *MockStorageInterface
	sessions      *MockSessionServiceInterface
	organizations *MockOrganizationServiceInterface
	cache         *MockCacheInterface
	tracer        *MockTracingInterface
	monitor       *MockMonitorInterface
	logger        *MockLoggerInterface
}

func newServiceMocks(ctrl *gomock.Controller) serviceMocks {
	return serviceMocks{
		storage:       NewMockStorageInterface(ctrl),
		sessions:      NewMockSessionServiceInterface(ctrl),
		organizations: NewMockOrganizationServiceInterface(ctrl),
		cache:         NewMockCacheInterface(ctrl),
		tracer:        NewMockTracingInterface(ctrl),
		monitor:       NewMockMonitorInterface(ctrl),
		logger:        NewMockLoggerInterface(ctrl),
	}
}

func (m serviceMocks) expectSpan(name string) {
	m.tracer.EXPECT().Start(gomock.Any(), name).
		Return(context.Background(), trace.SpanFromContext(context.Background()))
}

func (m serviceMocks) service() *Service {
	return NewService(m.storage, m.sessions, m.organizations, m.cache, m.tracer, m.monitor, m.logger)
}

func TestService_HandleRegistration(t *testing.T) {
	identityID := "identity-1"

	t.Run("provisions the user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl)
		m.expectSpan("webhooks.Service.HandleRegistration")
		m.storage.EXPECT().CreateUser(gomock.Any(), &types.User{ID: identityID, Email: "a@example.com", Name: "Ada"}).
			Return(&types.User{ID: identityID, Email: "a@example.com", Name: "Ada"}, nil)
		m.cache.EXPECT().InvalidateUser(gomock.Any(), identityID).Return(nil)
		m.logger.EXPECT().Infof(gomock.Any(), gomock.Any())

		if err := m.service().HandleRegistration(context.Background(), identityID, "a@example.com", "Ada"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("replayed hook is idempotent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl)
		m.expectSpan("webhooks.Service.HandleRegistration")
		m.storage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
		m.logger.EXPECT().Debugf(gomock.Any(), gomock.Any())

		if err := m.service().HandleRegistration(context.Background(), identityID, "a@example.com", "Ada"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl)
		m.expectSpan("webhooks.Service.HandleRegistration")

		if err := m.service().HandleRegistration(context.Background(), "", "a@example.com", ""); err == nil {
			t.Error("expected error but got none")
		}
	})
}

func TestService_HandleSessionHook(t *testing.T) {
	identityID := "identity-1"
	orgID := "org-1"

	request := func() *SessionHookRequest {
		return &SessionHookRequest{
			Identity: KratosIdentity{
				ID:     identityID,
				Traits: KratosTraits{Email: "a@example.com", Name: "Ada"},
			},
			IPAddress: "10.0.0.1",
			UserAgent: "curl",
		}
	}

	t.Run("issues a hydrated session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl)
		m.expectSpan("webhooks.Service.HandleSessionHook")
		m.storage.EXPECT().GetUserByID(gomock.Any(), identityID).
			Return(&types.User{ID: identityID}, nil)
		m.sessions.EXPECT().CreateSession(gomock.Any(), identityID, "10.0.0.1", "curl").
			Return(&types.Session{Token: "tok", ActiveOrganizationID: &orgID, ExpiresAt: time.Now().Add(time.Hour)}, nil)

		resp, err := m.service().HandleSessionHook(context.Background(), request())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.SessionToken != "tok" {
			t.Errorf("expected token tok, got %s", resp.SessionToken)
		}
		if resp.ActiveOrganizationID != orgID {
			t.Errorf("expected active organization %s, got %s", orgID, resp.ActiveOrganizationID)
		}
	})

	t.Run("self heals a missing user row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl)
		m.expectSpan("webhooks.Service.HandleSessionHook")
		m.storage.EXPECT().GetUserByID(gomock.Any(), identityID).Return(nil, storage.ErrNotFound)
		m.expectSpan("webhooks.Service.HandleRegistration")
		m.storage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
			Return(&types.User{ID: identityID}, nil)
		m.cache.EXPECT().InvalidateUser(gomock.Any(), identityID).Return(nil)
		m.logger.EXPECT().Infof(gomock.Any(), gomock.Any())
		m.sessions.EXPECT().CreateSession(gomock.Any(), identityID, "10.0.0.1", "curl").
			Return(&types.Session{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil)

		resp, err := m.service().HandleSessionHook(context.Background(), request())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.ActiveOrganizationID != "" {
			t.Errorf("expected empty active organization, got %s", resp.ActiveOrganizationID)
		}
	})

	t.Run("missing identity id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl)
		m.expectSpan("webhooks.Service.HandleSessionHook")

		if _, err := m.service().HandleSessionHook(context.Background(), &SessionHookRequest{}); err == nil {
			t.Error("expected error but got none")
		}
	})
}

func TestService_HandleTokenHook(t *testing.T) {
	userID := "user-123"
	orgs := []*types.Organization{
		{ID: "org-1", Name: "Org 1", Slug: "org-1"},
		{ID: "org-2", Name: "Org 2", Slug: "org-2"},
	}

	testCases := []struct {
		name         string
		request      *oauth2.TokenHookRequest
		setupMocks   func(serviceMocks)
		expectedErr  bool
		validateResp func(*testing.T, *TokenHookResponse)
	}{
		{
			name: "memberships and active organization",
			request: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession(userID),
			},
			setupMocks: func(m serviceMocks) {
				m.organizations.EXPECT().ListUserOrganizations(gomock.Any(), userID).Return(orgs, nil)
				m.organizations.EXPECT().GetInitialOrganization(gomock.Any(), userID).Return("org-1", nil)
			},
			validateResp: func(t *testing.T, resp *TokenHookResponse) {
				ids, ok := resp.Session.IDToken["organizations"].([]string)
				if !ok || len(ids) != 2 {
					t.Errorf("expected 2 organizations in ID token, got %v", resp.Session.IDToken["organizations"])
				}
				if resp.Session.AccessToken["active_organization_id"] != "org-1" {
					t.Errorf("expected active_organization_id org-1, got %v", resp.Session.AccessToken["active_organization_id"])
				}
			},
		},
		{
			name: "no memberships yields empty claims",
			request: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession(userID),
			},
			setupMocks: func(m serviceMocks) {
				m.organizations.EXPECT().ListUserOrganizations(gomock.Any(), userID).Return(nil, nil)
				m.organizations.EXPECT().GetInitialOrganization(gomock.Any(), userID).
					Return("", errcode.New(errcode.NotFound, "No initial organization."))
			},
			validateResp: func(t *testing.T, resp *TokenHookResponse) {
				if resp.Session.IDToken != nil {
					t.Errorf("expected no claims, got %v", resp.Session.IDToken)
				}
			},
		},
		{
			name: "active organization failure is non fatal",
			request: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession(userID),
			},
			setupMocks: func(m serviceMocks) {
				m.organizations.EXPECT().ListUserOrganizations(gomock.Any(), userID).Return(orgs, nil)
				m.organizations.EXPECT().GetInitialOrganization(gomock.Any(), userID).
					Return("", errors.New("connection refused"))
				m.logger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			validateResp: func(t *testing.T, resp *TokenHookResponse) {
				if resp.Session.IDToken["active_organization_id"] != nil {
					t.Error("expected no active_organization_id claim")
				}
				if resp.Session.IDToken["organizations"] == nil {
					t.Error("expected organizations claim")
				}
			},
		},
		{
			name: "no subject",
			request: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession(""),
			},
			expectedErr: true,
		},
		{
			name:        "nil session",
			request:     &oauth2.TokenHookRequest{},
			expectedErr: true,
		},
		{
			name: "listing failure",
			request: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession(userID),
			},
			setupMocks: func(m serviceMocks) {
				m.organizations.EXPECT().ListUserOrganizations(gomock.Any(), userID).
					Return(nil, errors.New("connection refused"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newServiceMocks(ctrl)
			m.expectSpan("webhooks.Service.HandleTokenHook")
			if tc.setupMocks != nil {
				tc.setupMocks(m)
			}

			resp, err := m.service().HandleTokenHook(context.Background(), tc.request)

			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.validateResp(t, resp)
		})
	}
}

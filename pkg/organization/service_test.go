// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/db"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/storage"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package organization -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organization -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organization -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organization -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

type serviceMocks struct {
	storage *MockStorageInterface
	cache   *MockCacheInterface
	db      *db.MockDBClientInterface
	tracer  *MockTracingInterface
	monitor *MockMonitorInterface
	logger  *MockLoggerInterface
}

func newServiceMocks(ctrl *gomock.Controller, span string) serviceMocks {
	m := serviceMocks{
		storage: NewMockStorageInterface(ctrl),
		cache:   NewMockCacheInterface(ctrl),
		db:      db.NewMockDBClientInterface(ctrl),
		tracer:  NewMockTracingInterface(ctrl),
		monitor: NewMockMonitorInterface(ctrl),
		logger:  NewMockLoggerInterface(ctrl),
	}
	m.tracer.EXPECT().Start(gomock.Any(), span).
		Return(context.Background(), trace.SpanFromContext(context.Background()))
	return m
}

func (m serviceMocks) service() *Service {
	return NewService(m.storage, m.cache, m.db, m.tracer, m.monitor, m.logger)
}

func (m serviceMocks) passthroughTx() {
	m.db.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func TestService_CreateOrganization(t *testing.T) {
	creatorID := "user-1"

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.CreateOrganization")
		m.passthroughTx()
		m.storage.EXPECT().CreateOrganization(gomock.Any(), &types.Organization{Name: "Acme", Slug: "acme"}).
			Return(&types.Organization{ID: "org-1", Name: "Acme", Slug: "acme"}, nil)
		m.storage.EXPECT().AddMember(gomock.Any(), "org-1", creatorID, "owner").Return("member-1", nil)
		m.cache.EXPECT().InvalidateOrganization(gomock.Any(), "org-1").Return(nil)

		org, err := m.service().CreateOrganization(context.Background(), creatorID, "Acme", "acme")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if org.ID != "org-1" {
			t.Errorf("expected organization org-1, got %s", org.ID)
		}
	})

	t.Run("duplicate slug", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.CreateOrganization")
		m.passthroughTx()
		m.storage.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).
			Return(nil, storage.ErrDuplicateKey)

		_, err := m.service().CreateOrganization(context.Background(), creatorID, "Acme", "acme")

		if !errcode.IsCode(err, errcode.Conflict) {
			t.Errorf("expected CONFLICT, got %v", err)
		}
	})

	t.Run("creator does not exist", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.CreateOrganization")
		m.passthroughTx()
		m.storage.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).
			Return(&types.Organization{ID: "org-1", Name: "Acme", Slug: "acme"}, nil)
		m.storage.EXPECT().AddMember(gomock.Any(), "org-1", creatorID, "owner").
			Return("", storage.ErrForeignKeyViolation)

		_, err := m.service().CreateOrganization(context.Background(), creatorID, "Acme", "acme")

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.CreateOrganization")

		_, err := m.service().CreateOrganization(context.Background(), creatorID, "", "acme")

		if !errcode.IsCode(err, errcode.Validation) {
			t.Errorf("expected VALIDATION, got %v", err)
		}
	})

	t.Run("anonymous caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.CreateOrganization")

		_, err := m.service().CreateOrganization(context.Background(), "", "Acme", "acme")

		if !errcode.IsCode(err, errcode.Unauthenticated) {
			t.Errorf("expected UNAUTHENTICATED, got %v", err)
		}
	})
}

func TestService_SetActiveOrganization(t *testing.T) {
	userID := "user-1"
	orgID := "org-1"

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.SetActiveOrganization")
		m.passthroughTx()
		m.storage.EXPECT().GetMember(gomock.Any(), orgID, userID).
			Return(&types.Member{OrganizationID: orgID, UserID: userID, Role: "member"}, nil)
		m.storage.EXPECT().SetUserActiveOrganization(gomock.Any(), userID, &orgID).Return(nil)
		m.storage.EXPECT().UpdateSessionsActiveOrganization(gomock.Any(), userID, &orgID).Return(nil)
		m.storage.EXPECT().GetUserByID(gomock.Any(), userID).
			Return(&types.User{ID: userID, ActiveOrganizationID: &orgID}, nil)
		m.cache.EXPECT().InvalidateUser(gomock.Any(), userID).Return(nil)

		user, err := m.service().SetActiveOrganization(context.Background(), userID, orgID)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ActiveOrganizationID == nil || *user.ActiveOrganizationID != orgID {
			t.Errorf("expected active organization %s, got %v", orgID, user.ActiveOrganizationID)
		}
	})

	t.Run("not a member", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.SetActiveOrganization")
		m.passthroughTx()
		m.storage.EXPECT().GetMember(gomock.Any(), orgID, userID).Return(nil, storage.ErrNotFound)
		security := NewMockSecurityLoggerInterface(ctrl)
		security.EXPECT().AuthzFailure(userID, "organization:set-active")
		m.logger.EXPECT().Security().Return(security)

		_, err := m.service().SetActiveOrganization(context.Background(), userID, orgID)

		if !errcode.IsCode(err, errcode.Forbidden) {
			t.Errorf("expected FORBIDDEN, got %v", err)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.SetActiveOrganization")
		m.passthroughTx()
		m.storage.EXPECT().GetMember(gomock.Any(), orgID, userID).
			Return(nil, errors.New("connection refused"))
		m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())

		_, err := m.service().SetActiveOrganization(context.Background(), userID, orgID)

		if !errcode.IsCode(err, errcode.Unexpected) {
			t.Errorf("expected UNEXPECTED, got %v", err)
		}
	})

	t.Run("missing organization id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.SetActiveOrganization")

		_, err := m.service().SetActiveOrganization(context.Background(), userID, "")

		if !errcode.IsCode(err, errcode.Validation) {
			t.Errorf("expected VALIDATION, got %v", err)
		}
	})
}

func TestService_ClearActiveOrganization(t *testing.T) {
	userID := "user-1"

	t.Run("clears and is idempotent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.ClearActiveOrganization")
		m.passthroughTx()
		m.storage.EXPECT().SetUserActiveOrganization(gomock.Any(), userID, nil).Return(nil)
		m.storage.EXPECT().UpdateSessionsActiveOrganization(gomock.Any(), userID, nil).Return(nil)
		m.storage.EXPECT().GetUserByID(gomock.Any(), userID).Return(&types.User{ID: userID}, nil)
		m.cache.EXPECT().InvalidateUser(gomock.Any(), userID).Return(nil)

		user, err := m.service().ClearActiveOrganization(context.Background(), userID)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ActiveOrganizationID != nil {
			t.Errorf("expected nil active organization, got %v", *user.ActiveOrganizationID)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.ClearActiveOrganization")
		m.passthroughTx()
		m.storage.EXPECT().SetUserActiveOrganization(gomock.Any(), userID, nil).
			Return(storage.ErrNotFound)

		_, err := m.service().ClearActiveOrganization(context.Background(), userID)

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})
}

func TestService_GetInitialOrganization(t *testing.T) {
	userID := "user-1"
	orgID := "org-1"

	testCases := []struct {
		name       string
		setupMocks func(*MockStorageInterface)
		expected   string
		wantCode   errcode.Code
	}{
		{
			name: "valid pointer wins",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetUserByID(gomock.Any(), userID).
					Return(&types.User{ID: userID, ActiveOrganizationID: &orgID}, nil)
				s.EXPECT().GetMember(gomock.Any(), orgID, userID).
					Return(&types.Member{OrganizationID: orgID, UserID: userID, Role: "member"}, nil)
			},
			expected: orgID,
		},
		{
			name: "no pointer set",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetUserByID(gomock.Any(), userID).
					Return(&types.User{ID: userID}, nil)
			},
			wantCode: errcode.NotFound,
		},
		{
			name: "stale pointer after membership loss",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetUserByID(gomock.Any(), userID).
					Return(&types.User{ID: userID, ActiveOrganizationID: &orgID}, nil)
				s.EXPECT().GetMember(gomock.Any(), orgID, userID).
					Return(nil, storage.ErrNotFound)
			},
			wantCode: errcode.NotFound,
		},
		{
			name: "unknown user",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetUserByID(gomock.Any(), userID).
					Return(nil, storage.ErrNotFound)
			},
			wantCode: errcode.NotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newServiceMocks(ctrl, "organization.Service.GetInitialOrganization")
			tc.setupMocks(m.storage)

			got, err := m.service().GetInitialOrganization(context.Background(), userID)

			if tc.wantCode != "" {
				if !errcode.IsCode(err, tc.wantCode) {
					t.Errorf("expected %s, got %v", tc.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestService_DeleteOrganization(t *testing.T) {
	orgID := "org-1"

	t.Run("deletes and clears pointers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.DeleteOrganization")
		m.passthroughTx()
		m.storage.EXPECT().DeleteOrganization(gomock.Any(), orgID).Return(nil)
		m.storage.EXPECT().ClearActiveOrganizationRefs(gomock.Any(), orgID).Return(nil)
		m.cache.EXPECT().InvalidateOrganization(gomock.Any(), orgID).Return(nil)

		if err := m.service().DeleteOrganization(context.Background(), orgID); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown organization", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.DeleteOrganization")
		m.passthroughTx()
		m.storage.EXPECT().DeleteOrganization(gomock.Any(), orgID).Return(storage.ErrNotFound)

		err := m.service().DeleteOrganization(context.Background(), orgID)

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})
}

func TestService_RemoveMember(t *testing.T) {
	orgID := "org-1"
	userID := "user-1"
	otherOrg := "org-2"

	t.Run("clears pointer referencing this organization", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.RemoveMember")
		m.passthroughTx()
		m.storage.EXPECT().RemoveMember(gomock.Any(), orgID, userID).Return(nil)
		m.storage.EXPECT().GetUserByID(gomock.Any(), userID).
			Return(&types.User{ID: userID, ActiveOrganizationID: &orgID}, nil)
		m.storage.EXPECT().SetUserActiveOrganization(gomock.Any(), userID, nil).Return(nil)
		m.cache.EXPECT().InvalidateOrganization(gomock.Any(), orgID).Return(nil)
		m.cache.EXPECT().InvalidateUser(gomock.Any(), userID).Return(nil)

		if err := m.service().RemoveMember(context.Background(), orgID, userID); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("leaves pointer to another organization", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.RemoveMember")
		m.passthroughTx()
		m.storage.EXPECT().RemoveMember(gomock.Any(), orgID, userID).Return(nil)
		m.storage.EXPECT().GetUserByID(gomock.Any(), userID).
			Return(&types.User{ID: userID, ActiveOrganizationID: &otherOrg}, nil)
		m.cache.EXPECT().InvalidateOrganization(gomock.Any(), orgID).Return(nil)
		m.cache.EXPECT().InvalidateUser(gomock.Any(), userID).Return(nil)

		if err := m.service().RemoveMember(context.Background(), orgID, userID); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown membership", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.RemoveMember")
		m.passthroughTx()
		m.storage.EXPECT().RemoveMember(gomock.Any(), orgID, userID).Return(storage.ErrNotFound)

		err := m.service().RemoveMember(context.Background(), orgID, userID)

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})
}

func TestService_UpdateMemberRole(t *testing.T) {
	orgID := "org-1"
	userID := "user-1"

	t.Run("normalizes and persists role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.UpdateMemberRole")
		m.storage.EXPECT().UpdateMemberRole(gomock.Any(), orgID, userID, "admin").Return(nil)
		m.storage.EXPECT().GetMember(gomock.Any(), orgID, userID).
			Return(&types.Member{OrganizationID: orgID, UserID: userID, Role: "admin"}, nil)
		m.cache.EXPECT().InvalidateOrganization(gomock.Any(), orgID).Return(nil)

		member, err := m.service().UpdateMemberRole(context.Background(), orgID, userID, "admin")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if member.Role != "admin" {
			t.Errorf("expected role admin, got %s", member.Role)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.UpdateMemberRole")

		_, err := m.service().UpdateMemberRole(context.Background(), orgID, userID, "superuser")

		if !errcode.IsCode(err, errcode.Validation) {
			t.Errorf("expected VALIDATION, got %v", err)
		}
	})

	t.Run("unknown member", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "organization.Service.UpdateMemberRole")
		m.storage.EXPECT().UpdateMemberRole(gomock.Any(), orgID, userID, "member").
			Return(storage.ErrNotFound)

		_, err := m.service().UpdateMemberRole(context.Background(), orgID, userID, "member")

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package user

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/storage"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package user -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package user -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package user -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package user -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

type serviceMocks struct {
	storage  *MockStorageInterface
	sessions *MockSessionRevokerInterface
	cache    *MockCacheInterface
	tracer   *MockTracingInterface
	monitor  *MockMonitorInterface
	logger   *MockLoggerInterface
}

func newServiceMocks(ctrl *gomock.Controller, span string) serviceMocks {
	m := serviceMocks{
		storage:  NewMockStorageInterface(ctrl),
		sessions: NewMockSessionRevokerInterface(ctrl),
		cache:    NewMockCacheInterface(ctrl),
		tracer:   NewMockTracingInterface(ctrl),
		monitor:  NewMockMonitorInterface(ctrl),
		logger:   NewMockLoggerInterface(ctrl),
	}
	m.tracer.EXPECT().Start(gomock.Any(), span).
		Return(context.Background(), trace.SpanFromContext(context.Background()))
	return m
}

func (m serviceMocks) service() *Service {
	return NewService(m.storage, m.sessions, m.cache, m.tracer, m.monitor, m.logger)
}

func TestService_GetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "user.Service.GetUser")
		m.storage.EXPECT().GetUserByID(gomock.Any(), "user-1").
			Return(&types.User{ID: "user-1", Email: "a@example.com"}, nil)

		u, err := m.service().GetUser(context.Background(), "user-1")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Email != "a@example.com" {
			t.Errorf("expected a@example.com, got %s", u.Email)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "user.Service.GetUser")
		m.storage.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(nil, storage.ErrNotFound)

		_, err := m.service().GetUser(context.Background(), "user-1")

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})
}

func TestService_UpdateProfile(t *testing.T) {
	t.Run("updates name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "user.Service.UpdateProfile")
		u := &types.User{ID: "user-1", Name: "New Name"}
		m.storage.EXPECT().UpdateUser(gomock.Any(), u, []string{"name"}).Return(nil)
		m.storage.EXPECT().GetUserByID(gomock.Any(), "user-1").
			Return(&types.User{ID: "user-1", Name: "New Name"}, nil)
		m.cache.EXPECT().InvalidateUser(gomock.Any(), "user-1").Return(nil)

		updated, err := m.service().UpdateProfile(context.Background(), u, []string{"name"})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Name != "New Name" {
			t.Errorf("expected New Name, got %s", updated.Name)
		}
	})

	t.Run("role is off limits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "user.Service.UpdateProfile")

		_, err := m.service().UpdateProfile(context.Background(),
			&types.User{ID: "user-1", Role: "admin"}, []string{"role"})

		if !errcode.IsCode(err, errcode.Validation) {
			t.Errorf("expected VALIDATION, got %v", err)
		}
	})
}

func TestService_SetRole(t *testing.T) {
	t.Run("promotes to admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "user.Service.SetRole")
		m.storage.EXPECT().UpdateUser(gomock.Any(), &types.User{ID: "user-1", Role: "admin"}, []string{"role"}).Return(nil)
		m.storage.EXPECT().GetUserByID(gomock.Any(), "user-1").
			Return(&types.User{ID: "user-1", Role: "admin"}, nil)
		m.cache.EXPECT().InvalidateUser(gomock.Any(), "user-1").Return(nil)

		u, err := m.service().SetRole(context.Background(), "user-1", "admin")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Role != "admin" {
			t.Errorf("expected admin, got %s", u.Role)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "user.Service.SetRole")

		_, err := m.service().SetRole(context.Background(), "user-1", "owner")

		if !errcode.IsCode(err, errcode.Validation) {
			t.Errorf("expected VALIDATION, got %v", err)
		}
	})
}

func TestService_DeleteUser(t *testing.T) {
	t.Run("revokes sessions then deletes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "user.Service.DeleteUser")
		m.sessions.EXPECT().RevokeUserSessions(gomock.Any(), "user-1").Return(nil)
		m.storage.EXPECT().DeleteUser(gomock.Any(), "user-1").Return(nil)
		m.cache.EXPECT().InvalidateUser(gomock.Any(), "user-1").Return(nil)

		if err := m.service().DeleteUser(context.Background(), "user-1"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("revocation failure does not abort deletion", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "user.Service.DeleteUser")
		m.sessions.EXPECT().RevokeUserSessions(gomock.Any(), "user-1").
			Return(errors.New("connection refused"))
		m.logger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any())
		m.storage.EXPECT().DeleteUser(gomock.Any(), "user-1").Return(nil)
		m.cache.EXPECT().InvalidateUser(gomock.Any(), "user-1").Return(nil)

		if err := m.service().DeleteUser(context.Background(), "user-1"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "user.Service.DeleteUser")
		m.sessions.EXPECT().RevokeUserSessions(gomock.Any(), "user-1").Return(nil)
		m.storage.EXPECT().DeleteUser(gomock.Any(), "user-1").Return(storage.ErrNotFound)

		err := m.service().DeleteUser(context.Background(), "user-1")

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})
}

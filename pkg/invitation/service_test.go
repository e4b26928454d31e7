// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package invitation

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/db"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/storage"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package invitation -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitation -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitation -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitation -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

type serviceMocks struct {
	storage *MockStorageInterface
	kratos  *MockKratosClientInterface
	cache   *MockCacheInterface
	db      *db.MockDBClientInterface
	tracer  *MockTracingInterface
	monitor *MockMonitorInterface
	logger  *MockLoggerInterface
}

func newServiceMocks(ctrl *gomock.Controller, span string) serviceMocks {
	m := serviceMocks{
		storage: NewMockStorageInterface(ctrl),
		kratos:  NewMockKratosClientInterface(ctrl),
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

func (m serviceMocks) service(lifetime time.Duration) *Service {
	return NewService(m.storage, m.kratos, m.cache, m.db, lifetime, m.tracer, m.monitor, m.logger)
}

func (m serviceMocks) passthroughTx() {
	m.db.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func TestService_CreateInvitation(t *testing.T) {
	orgID := "org-1"
	inviterID := "user-1"

	t.Run("existing identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "invitation.Service.CreateInvitation")
		m.kratos.EXPECT().GetIdentityIDByEmail(gomock.Any(), "invitee@example.com").Return("identity-1", nil)
		m.storage.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, inv *types.Invitation) (*types.Invitation, error) {
				if inv.Email != "invitee@example.com" {
					t.Errorf("expected normalized email, got %s", inv.Email)
				}
				if inv.Role != "member" {
					t.Errorf("expected role member, got %s", inv.Role)
				}
				inv.ID = "inv-1"
				inv.Status = types.InvitationPending
				return inv, nil
			},
		)
		m.kratos.EXPECT().CreateRecoveryLink(gomock.Any(), "identity-1", (24 * time.Hour).String()).
			Return("https://kratos/recovery", "CODE123", nil)
		m.cache.EXPECT().InvalidateOrganization(gomock.Any(), orgID).Return(nil)

		inv, link, code, err := m.service(24*time.Hour).CreateInvitation(
			context.Background(), orgID, inviterID, "  Invitee@Example.com ", "member")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.ID != "inv-1" || link != "https://kratos/recovery" || code != "CODE123" {
			t.Errorf("unexpected result: %v %s %s", inv, link, code)
		}
	})

	t.Run("provisions missing identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "invitation.Service.CreateInvitation")
		m.kratos.EXPECT().GetIdentityIDByEmail(gomock.Any(), "new@example.com").Return("", nil)
		m.kratos.EXPECT().CreateIdentity(gomock.Any(), "new@example.com").Return("identity-2", nil)
		m.storage.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, inv *types.Invitation) (*types.Invitation, error) {
				inv.ID = "inv-2"
				return inv, nil
			},
		)
		m.kratos.EXPECT().CreateRecoveryLink(gomock.Any(), "identity-2", gomock.Any()).
			Return("https://kratos/recovery", "CODE456", nil)
		m.cache.EXPECT().InvalidateOrganization(gomock.Any(), orgID).Return(nil)

		_, _, _, err := m.service(24*time.Hour).CreateInvitation(
			context.Background(), orgID, inviterID, "new@example.com", "admin")

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "invitation.Service.CreateInvitation")

		_, _, _, err := m.service(24*time.Hour).CreateInvitation(
			context.Background(), orgID, inviterID, "a@example.com", "superuser")

		if !errcode.IsCode(err, errcode.Validation) {
			t.Errorf("expected VALIDATION, got %v", err)
		}
	})

	t.Run("unknown organization", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "invitation.Service.CreateInvitation")
		m.kratos.EXPECT().GetIdentityIDByEmail(gomock.Any(), "a@example.com").Return("identity-1", nil)
		m.storage.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).
			Return(nil, storage.ErrForeignKeyViolation)

		_, _, _, err := m.service(24*time.Hour).CreateInvitation(
			context.Background(), orgID, inviterID, "a@example.com", "member")

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})
}

func TestService_AcceptInvitation(t *testing.T) {
	userID := "user-2"
	pending := func() *types.Invitation {
		return &types.Invitation{
			ID:             "inv-1",
			OrganizationID: "org-1",
			Email:          "invitee@example.com",
			Role:           "member",
			Status:         types.InvitationPending,
			ExpiresAt:      time.Now().Add(time.Hour),
		}
	}

	t.Run("accepts and joins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "invitation.Service.AcceptInvitation")
		m.passthroughTx()
		m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").Return(pending(), nil)
		m.storage.EXPECT().UpdateInvitationStatus(gomock.Any(), "inv-1", types.InvitationPending, types.InvitationAccepted).Return(nil)
		m.storage.EXPECT().AddMember(gomock.Any(), "org-1", userID, "member").Return("member-1", nil)
		m.cache.EXPECT().InvalidateOrganization(gomock.Any(), "org-1").Return(nil)

		inv, err := m.service(time.Hour).AcceptInvitation(context.Background(), "inv-1", userID, "Invitee@Example.com")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Status != types.InvitationAccepted {
			t.Errorf("expected accepted, got %s", inv.Status)
		}
	})

	t.Run("wrong email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "invitation.Service.AcceptInvitation")
		m.passthroughTx()
		m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").Return(pending(), nil)

		_, err := m.service(time.Hour).AcceptInvitation(context.Background(), "inv-1", userID, "other@example.com")

		if !errcode.IsCode(err, errcode.Forbidden) {
			t.Errorf("expected FORBIDDEN, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := pending()
		inv.ExpiresAt = time.Now().Add(-time.Minute)

		m := newServiceMocks(ctrl, "invitation.Service.AcceptInvitation")
		m.passthroughTx()
		m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").Return(inv, nil)

		_, err := m.service(time.Hour).AcceptInvitation(context.Background(), "inv-1", userID, "invitee@example.com")

		if !errcode.IsCode(err, errcode.Validation) {
			t.Errorf("expected VALIDATION, got %v", err)
		}
	})

	t.Run("already transitioned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := pending()
		inv.Status = types.InvitationCanceled

		m := newServiceMocks(ctrl, "invitation.Service.AcceptInvitation")
		m.passthroughTx()
		m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").Return(inv, nil)

		_, err := m.service(time.Hour).AcceptInvitation(context.Background(), "inv-1", userID, "invitee@example.com")

		if !errcode.IsCode(err, errcode.Conflict) {
			t.Errorf("expected CONFLICT, got %v", err)
		}
	})

	t.Run("loses the transition race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "invitation.Service.AcceptInvitation")
		m.passthroughTx()
		m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").Return(pending(), nil)
		m.storage.EXPECT().UpdateInvitationStatus(gomock.Any(), "inv-1", types.InvitationPending, types.InvitationAccepted).
			Return(storage.ErrNotFound)

		_, err := m.service(time.Hour).AcceptInvitation(context.Background(), "inv-1", userID, "invitee@example.com")

		if !errcode.IsCode(err, errcode.Conflict) {
			t.Errorf("expected CONFLICT, got %v", err)
		}
	})

	t.Run("already a member", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "invitation.Service.AcceptInvitation")
		m.passthroughTx()
		m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").Return(pending(), nil)
		m.storage.EXPECT().UpdateInvitationStatus(gomock.Any(), "inv-1", types.InvitationPending, types.InvitationAccepted).Return(nil)
		m.storage.EXPECT().AddMember(gomock.Any(), "org-1", userID, "member").
			Return("", storage.ErrDuplicateKey)

		_, err := m.service(time.Hour).AcceptInvitation(context.Background(), "inv-1", userID, "invitee@example.com")

		if !errcode.IsCode(err, errcode.Conflict) {
			t.Errorf("expected CONFLICT, got %v", err)
		}
	})
}

func TestService_RejectInvitation(t *testing.T) {
	t.Run("rejects pending invitation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "invitation.Service.RejectInvitation")
		m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").
			Return(&types.Invitation{ID: "inv-1", OrganizationID: "org-1", Email: "a@example.com", Status: types.InvitationPending}, nil)
		m.storage.EXPECT().UpdateInvitationStatus(gomock.Any(), "inv-1", types.InvitationPending, types.InvitationRejected).Return(nil)
		m.cache.EXPECT().InvalidateOrganization(gomock.Any(), "org-1").Return(nil)

		inv, err := m.service(time.Hour).RejectInvitation(context.Background(), "inv-1", "a@example.com")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Status != types.InvitationRejected {
			t.Errorf("expected rejected, got %s", inv.Status)
		}
	})

	t.Run("wrong email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "invitation.Service.RejectInvitation")
		m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").
			Return(&types.Invitation{ID: "inv-1", Email: "a@example.com", Status: types.InvitationPending}, nil)

		_, err := m.service(time.Hour).RejectInvitation(context.Background(), "inv-1", "b@example.com")

		if !errcode.IsCode(err, errcode.Forbidden) {
			t.Errorf("expected FORBIDDEN, got %v", err)
		}
	})
}

func TestService_CancelInvitation(t *testing.T) {
	t.Run("cancels own organization's invitation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "invitation.Service.CancelInvitation")
		m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").
			Return(&types.Invitation{ID: "inv-1", OrganizationID: "org-1", Status: types.InvitationPending}, nil)
		m.storage.EXPECT().UpdateInvitationStatus(gomock.Any(), "inv-1", types.InvitationPending, types.InvitationCanceled).Return(nil)
		m.cache.EXPECT().InvalidateOrganization(gomock.Any(), "org-1").Return(nil)

		inv, err := m.service(time.Hour).CancelInvitation(context.Background(), "inv-1", "org-1")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Status != types.InvitationCanceled {
			t.Errorf("expected canceled, got %s", inv.Status)
		}
	})

	t.Run("another organization's invitation reads as absent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newServiceMocks(ctrl, "invitation.Service.CancelInvitation")
		m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").
			Return(&types.Invitation{ID: "inv-1", OrganizationID: "org-2", Status: types.InvitationPending}, nil)

		_, err := m.service(time.Hour).CancelInvitation(context.Background(), "inv-1", "org-1")

		if !errcode.IsCode(err, errcode.NotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})
}

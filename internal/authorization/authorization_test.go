// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/storage"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_tracing.go -source=../tracing/interfaces.go

func TestAuthorizer_CheckPlatform(t *testing.T) {
	testCases := []struct {
		name       string
		role       string
		capability string
		expected   bool
	}{
		{
			name:       "admin lists organizations",
			role:       "admin",
			capability: "organization:list",
			expected:   true,
		},
		{
			name:       "admin deletes users",
			role:       "admin",
			capability: "user:delete",
			expected:   true,
		},
		{
			name:       "user creates organization",
			role:       "user",
			capability: "organization:create",
			expected:   true,
		},
		{
			name:       "user cannot list users",
			role:       "user",
			capability: "user:list",
			expected:   false,
		},
		{
			name:       "user cannot list organizations",
			role:       "user",
			capability: "organization:list",
			expected:   false,
		},
		{
			name:       "unknown role grants nothing",
			role:       "superuser",
			capability: "organization:create",
			expected:   false,
		},
		{
			name:       "unknown capability",
			role:       "admin",
			capability: "organization:explode",
			expected:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockMembers := NewMockMemberStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "authorization.Authorizer.CheckPlatform").
				Return(context.Background(), trace.SpanFromContext(context.Background()))

			a := NewAuthorizer(mockMembers, mockTracer, mockMonitor, mockLogger)

			result := a.CheckPlatform(context.Background(), tc.role, tc.capability)

			if result.Success != tc.expected {
				t.Errorf("expected success=%v, got %v", tc.expected, result.Success)
			}
		})
	}
}

func TestAuthorizer_CheckOrganization(t *testing.T) {
	orgID := "org-123"
	userID := "user-123"
	dbErr := errors.New("connection refused")

	testCases := []struct {
		name        string
		capability  string
		setupMocks  func(*MockMemberStorageInterface, *MockLoggerInterface)
		expected    bool
		expectedErr error
	}{
		{
			name:       "owner deletes organization",
			capability: "organization:delete",
			setupMocks: func(mockMembers *MockMemberStorageInterface, _ *MockLoggerInterface) {
				mockMembers.EXPECT().GetMember(gomock.Any(), orgID, userID).
					Return(&types.Member{OrganizationID: orgID, UserID: userID, Role: "owner"}, nil)
			},
			expected: true,
		},
		{
			name:       "admin cannot delete organization",
			capability: "organization:delete",
			setupMocks: func(mockMembers *MockMemberStorageInterface, mockLogger *MockLoggerInterface) {
				mockMembers.EXPECT().GetMember(gomock.Any(), orgID, userID).
					Return(&types.Member{OrganizationID: orgID, UserID: userID, Role: "admin"}, nil)
				security := NewMockSecurityLoggerInterface(mockLogger.ctrl)
				security.EXPECT().AuthzFailure(userID, "organization:delete")
				mockLogger.EXPECT().Security().Return(security)
			},
			expected: false,
		},
		{
			name:       "admin invites members",
			capability: "invitation:create",
			setupMocks: func(mockMembers *MockMemberStorageInterface, _ *MockLoggerInterface) {
				mockMembers.EXPECT().GetMember(gomock.Any(), orgID, userID).
					Return(&types.Member{OrganizationID: orgID, UserID: userID, Role: "admin"}, nil)
			},
			expected: true,
		},
		{
			name:       "member only lists members",
			capability: "member:list",
			setupMocks: func(mockMembers *MockMemberStorageInterface, _ *MockLoggerInterface) {
				mockMembers.EXPECT().GetMember(gomock.Any(), orgID, userID).
					Return(&types.Member{OrganizationID: orgID, UserID: userID, Role: "member"}, nil)
			},
			expected: true,
		},
		{
			name:       "combined role set grants union",
			capability: "organization:delete",
			setupMocks: func(mockMembers *MockMemberStorageInterface, _ *MockLoggerInterface) {
				mockMembers.EXPECT().GetMember(gomock.Any(), orgID, userID).
					Return(&types.Member{OrganizationID: orgID, UserID: userID, Role: "member,owner"}, nil)
			},
			expected: true,
		},
		{
			name:       "non member is denied without error",
			capability: "member:list",
			setupMocks: func(mockMembers *MockMemberStorageInterface, _ *MockLoggerInterface) {
				mockMembers.EXPECT().GetMember(gomock.Any(), orgID, userID).
					Return(nil, storage.ErrNotFound)
			},
			expected: false,
		},
		{
			name:       "storage failure surfaces as error",
			capability: "member:list",
			setupMocks: func(mockMembers *MockMemberStorageInterface, mockLogger *MockLoggerInterface) {
				mockMembers.EXPECT().GetMember(gomock.Any(), orgID, userID).
					Return(nil, dbErr)
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expected:    false,
			expectedErr: dbErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockMembers := NewMockMemberStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "authorization.Authorizer.CheckOrganization").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(mockMembers, mockLogger)

			a := NewAuthorizer(mockMembers, mockTracer, mockMonitor, mockLogger)

			result, err := a.CheckOrganization(context.Background(), userID, orgID, tc.capability)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if result.Success != tc.expected {
				t.Errorf("expected success=%v, got %v", tc.expected, result.Success)
			}
		})
	}
}

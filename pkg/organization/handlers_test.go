// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/authentication"
)

type apiMocks struct {
	service *MockServiceInterface
	tracer  *MockTracingInterface
	monitor *MockMonitorInterface
	logger  *MockLoggerInterface
}

func newAPIMocks(ctrl *gomock.Controller, span string) apiMocks {
	m := apiMocks{
		service: NewMockServiceInterface(ctrl),
		tracer:  NewMockTracingInterface(ctrl),
		monitor: NewMockMonitorInterface(ctrl),
		logger:  NewMockLoggerInterface(ctrl),
	}
	m.tracer.EXPECT().Start(gomock.Any(), span).
		DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})
	return m
}

func (m apiMocks) api() *API {
	return NewAPI(m.service, m.tracer, m.monitor, m.logger)
}

func withPrincipal(r *http.Request, p *authentication.Principal) *http.Request {
	return r.WithContext(authentication.WithPrincipal(r.Context(), p))
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	return resp.Error.Code
}

func TestAPI_CreateOrganization(t *testing.T) {
	principal := &authentication.Principal{UserID: "user-1"}

	testCases := []struct {
		name       string
		principal  *authentication.Principal
		body       string
		setupMocks func(*MockServiceInterface)
		wantStatus int
		wantCode   string
	}{
		{
			name:      "created",
			principal: principal,
			body:      `{"name": "Acme", "slug": "acme"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateOrganization(gomock.Any(), "user-1", "Acme", "acme").
					Return(&types.Organization{ID: "org-1", Name: "Acme", Slug: "acme"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "anonymous",
			principal:  nil,
			body:       `{"name": "Acme", "slug": "acme"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHENTICATED",
		},
		{
			name:       "uppercase slug rejected",
			principal:  principal,
			body:       `{"name": "Acme", "slug": "Acme"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION",
		},
		{
			name:       "missing name rejected",
			principal:  principal,
			body:       `{"slug": "acme"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION",
		},
		{
			name:      "duplicate slug",
			principal: principal,
			body:      `{"name": "Acme", "slug": "acme"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateOrganization(gomock.Any(), "user-1", "Acme", "acme").
					Return(nil, errcode.New(errcode.Conflict, "An organization with this slug already exists."))
			},
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newAPIMocks(ctrl, "organization.API.CreateOrganization")
			if tc.setupMocks != nil {
				tc.setupMocks(m.service)
			}

			req := httptest.NewRequest(http.MethodPost, "/app/organizations", strings.NewReader(tc.body))
			if tc.principal != nil {
				req = withPrincipal(req, tc.principal)
			}
			w := httptest.NewRecorder()

			m.api().CreateOrganization(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if tc.wantCode != "" {
				if got := errorCode(t, w.Body.Bytes()); got != tc.wantCode {
					t.Errorf("expected code %s, got %s", tc.wantCode, got)
				}
			}
		})
	}
}

func TestAPI_GetActive(t *testing.T) {
	t.Run("no active organization", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newAPIMocks(ctrl, "organization.API.GetActive")

		req := withPrincipal(
			httptest.NewRequest(http.MethodGet, "/app/organizations/manage", nil),
			&authentication.Principal{UserID: "user-1"},
		)
		w := httptest.NewRecorder()

		m.api().GetActive(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d", w.Code)
		}
		if got := errorCode(t, w.Body.Bytes()); got != "NO_ACTIVE_ORGANIZATION" {
			t.Errorf("expected code NO_ACTIVE_ORGANIZATION, got %s", got)
		}
	})

	t.Run("returns active organization", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newAPIMocks(ctrl, "organization.API.GetActive")
		m.service.EXPECT().GetOrganization(gomock.Any(), "org-1").
			Return(&types.Organization{ID: "org-1", Name: "Acme", Slug: "acme"}, nil)

		req := withPrincipal(
			httptest.NewRequest(http.MethodGet, "/app/organizations/manage", nil),
			&authentication.Principal{UserID: "user-1", ActiveOrganizationID: "org-1"},
		)
		w := httptest.NewRecorder()

		m.api().GetActive(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
		var resp struct {
			Data types.Organization `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if resp.Data.Slug != "acme" {
			t.Errorf("expected slug acme, got %s", resp.Data.Slug)
		}
	})
}

func TestAPI_SetActive(t *testing.T) {
	t.Run("forbidden for non member", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newAPIMocks(ctrl, "organization.API.SetActive")
		m.service.EXPECT().SetActiveOrganization(gomock.Any(), "user-1", "org-1").
			Return(nil, errcode.New(errcode.Forbidden, "Not a member of this organization."))

		req := withPrincipal(
			httptest.NewRequest(http.MethodPut, "/app/organizations/active", strings.NewReader(`{"organizationId": "org-1"}`)),
			&authentication.Principal{UserID: "user-1"},
		)
		w := httptest.NewRecorder()

		m.api().SetActive(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", w.Code)
		}
	})

	t.Run("switches organization", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orgID := "org-1"
		m := newAPIMocks(ctrl, "organization.API.SetActive")
		m.service.EXPECT().SetActiveOrganization(gomock.Any(), "user-1", orgID).
			Return(&types.User{ID: "user-1", ActiveOrganizationID: &orgID}, nil)

		req := withPrincipal(
			httptest.NewRequest(http.MethodPut, "/app/organizations/active", strings.NewReader(`{"organizationId": "org-1"}`)),
			&authentication.Principal{UserID: "user-1"},
		)
		w := httptest.NewRecorder()

		m.api().SetActive(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
	})
}

func TestAPI_UpdateActive(t *testing.T) {
	t.Run("nothing to update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newAPIMocks(ctrl, "organization.API.UpdateActive")

		req := withPrincipal(
			httptest.NewRequest(http.MethodPatch, "/app/organizations/manage", strings.NewReader(`{}`)),
			&authentication.Principal{UserID: "user-1", ActiveOrganizationID: "org-1"},
		)
		w := httptest.NewRecorder()

		m.api().UpdateActive(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})

	t.Run("renames organization", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newAPIMocks(ctrl, "organization.API.UpdateActive")
		m.service.EXPECT().UpdateOrganization(gomock.Any(), &types.Organization{ID: "org-1", Name: "New Name"}, []string{"name"}).
			Return(&types.Organization{ID: "org-1", Name: "New Name", Slug: "acme"}, nil)

		req := withPrincipal(
			httptest.NewRequest(http.MethodPatch, "/app/organizations/manage", strings.NewReader(`{"name": "New Name"}`)),
			&authentication.Principal{UserID: "user-1", ActiveOrganizationID: "org-1"},
		)
		w := httptest.NewRecorder()

		m.api().UpdateActive(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
	})
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/authorization"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/authentication"
)

//go:generate mockgen -build_flags=--mod=mod -package web -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package web -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package web -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

type guardMocks struct {
	authorizer *authorization.MockAuthorizerInterface
	tracer     *MockTracingInterface
	monitor    *MockMonitorInterface
	logger     *MockLoggerInterface
}

func newGuardMocks(ctrl *gomock.Controller) guardMocks {
	return guardMocks{
		authorizer: authorization.NewMockAuthorizerInterface(ctrl),
		tracer:     NewMockTracingInterface(ctrl),
		monitor:    NewMockMonitorInterface(ctrl),
		logger:     NewMockLoggerInterface(ctrl),
	}
}

func (m guardMocks) guards() *Guards {
	return NewGuards(m.authorizer, m.tracer, m.monitor, m.logger)
}

func (m guardMocks) expectSpan(name string) {
	m.tracer.EXPECT().Start(gomock.Any(), name).
		DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})
}

func (m guardMocks) expectAuthzFailure(ctrl *gomock.Controller, userID, capability string) {
	security := NewMockSecurityLoggerInterface(ctrl)
	security.EXPECT().AuthzFailure(userID, capability)
	m.logger.EXPECT().Security().Return(security)
}

func nextSentinel(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func principalRequest(target string, p *authentication.Principal) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if p == nil {
		return r
	}
	return r.WithContext(authentication.WithPrincipal(r.Context(), p))
}

func decodeErrorCode(t *testing.T, body []byte) string {
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

func TestGuards_RequireSession(t *testing.T) {
	t.Run("anonymous browser is sent to login with callback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newGuardMocks(ctrl)
		called := false

		req := principalRequest("/app/organizations?page=2", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		w := httptest.NewRecorder()

		m.guards().RequireSession(nextSentinel(t, &called)).ServeHTTP(w, req)

		if called {
			t.Error("next handler should not run")
		}
		if w.Code != http.StatusSeeOther {
			t.Errorf("expected status 303, got %d", w.Code)
		}
		location := w.Header().Get("Location")
		if location != "/login?callbackURL=%2Fapp%2Forganizations%3Fpage%3D2" {
			t.Errorf("unexpected redirect target %s", location)
		}
	})

	t.Run("anonymous API client gets the taxonomy error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newGuardMocks(ctrl)
		called := false

		req := principalRequest("/app/organizations", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()

		m.guards().RequireSession(nextSentinel(t, &called)).ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
		if got := decodeErrorCode(t, w.Body.Bytes()); got != "UNAUTHENTICATED" {
			t.Errorf("expected UNAUTHENTICATED, got %s", got)
		}
	})

	t.Run("signed-in request passes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newGuardMocks(ctrl)
		called := false

		req := principalRequest("/app/me", &authentication.Principal{UserID: "user-1"})
		w := httptest.NewRecorder()

		m.guards().RequireSession(nextSentinel(t, &called)).ServeHTTP(w, req)

		if !called {
			t.Error("next handler should run")
		}
	})
}

func TestGuards_RequireActiveOrganization(t *testing.T) {
	t.Run("browser without organization is sent to onboarding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newGuardMocks(ctrl)
		called := false

		req := principalRequest("/app/members", &authentication.Principal{UserID: "user-1"})
		req.Header.Set("Accept", "text/html")
		w := httptest.NewRecorder()

		m.guards().RequireActiveOrganization(nextSentinel(t, &called)).ServeHTTP(w, req)

		if called {
			t.Error("next handler should not run")
		}
		if w.Code != http.StatusSeeOther {
			t.Errorf("expected status 303, got %d", w.Code)
		}
		if got := w.Header().Get("Location"); got != "/onboarding" {
			t.Errorf("expected /onboarding, got %s", got)
		}
	})

	t.Run("API client without organization gets a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newGuardMocks(ctrl)
		called := false

		req := principalRequest("/app/members", &authentication.Principal{UserID: "user-1"})
		w := httptest.NewRecorder()

		m.guards().RequireActiveOrganization(nextSentinel(t, &called)).ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d", w.Code)
		}
		if got := decodeErrorCode(t, w.Body.Bytes()); got != "NO_ACTIVE_ORGANIZATION" {
			t.Errorf("expected NO_ACTIVE_ORGANIZATION, got %s", got)
		}
	})

	t.Run("organization-scoped session passes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newGuardMocks(ctrl)
		called := false

		req := principalRequest("/app/members", &authentication.Principal{UserID: "user-1", ActiveOrganizationID: "org-1"})
		w := httptest.NewRecorder()

		m.guards().RequireActiveOrganization(nextSentinel(t, &called)).ServeHTTP(w, req)

		if !called {
			t.Error("next handler should run")
		}
	})
}

func TestGuards_RequireOrganization(t *testing.T) {
	principal := &authentication.Principal{UserID: "user-1", ActiveOrganizationID: "org-1"}

	t.Run("member with the capability passes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newGuardMocks(ctrl)
		m.expectSpan("web.Guards.RequireOrganization")
		m.authorizer.EXPECT().CheckOrganization(gomock.Any(), "user-1", "org-1", "member:list").
			Return(authorization.CheckResult{Success: true}, nil)
		called := false

		req := principalRequest("/app/members", principal)
		w := httptest.NewRecorder()

		m.guards().RequireOrganization(authorization.CapMemberList)(nextSentinel(t, &called)).ServeHTTP(w, req)

		if !called {
			t.Error("next handler should run")
		}
	})

	t.Run("missing capability is denied with an audit record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newGuardMocks(ctrl)
		m.expectSpan("web.Guards.RequireOrganization")
		m.authorizer.EXPECT().CheckOrganization(gomock.Any(), "user-1", "org-1", "organization:delete").
			Return(authorization.CheckResult{Success: false}, nil)
		m.expectAuthzFailure(ctrl, "user-1", "organization:delete")
		called := false

		req := principalRequest("/app/organizations/manage", principal)
		req.Header.Set("Accept", "text/html")
		w := httptest.NewRecorder()

		m.guards().RequireOrganization(authorization.CapOrganizationDelete)(nextSentinel(t, &called)).ServeHTTP(w, req)

		if called {
			t.Error("next handler should not run")
		}
		if w.Code != http.StatusSeeOther {
			t.Errorf("expected status 303, got %d", w.Code)
		}
		if got := w.Header().Get("Location"); got != "/dashboard" {
			t.Errorf("expected /dashboard, got %s", got)
		}
	})

	t.Run("no active organization never consults the authorizer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// No CheckOrganization expectation: a consult would fail the test.
		m := newGuardMocks(ctrl)
		m.expectSpan("web.Guards.RequireOrganization")
		called := false

		req := principalRequest("/app/members", &authentication.Principal{UserID: "user-1"})
		w := httptest.NewRecorder()

		m.guards().RequireOrganization(authorization.CapMemberList)(nextSentinel(t, &called)).ServeHTTP(w, req)

		if called {
			t.Error("next handler should not run")
		}
		if w.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d", w.Code)
		}
	})

	t.Run("authorizer failure fails closed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newGuardMocks(ctrl)
		m.expectSpan("web.Guards.RequireOrganization")
		m.authorizer.EXPECT().CheckOrganization(gomock.Any(), "user-1", "org-1", "member:list").
			Return(authorization.CheckResult{}, errors.New("connection refused"))
		m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any())
		called := false

		req := principalRequest("/app/members", principal)
		w := httptest.NewRecorder()

		m.guards().RequireOrganization(authorization.CapMemberList)(nextSentinel(t, &called)).ServeHTTP(w, req)

		if called {
			t.Error("next handler should not run")
		}
		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", w.Code)
		}
	})

	t.Run("anonymous request is sent to login", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newGuardMocks(ctrl)
		m.expectSpan("web.Guards.RequireOrganization")
		called := false

		req := principalRequest("/app/members", nil)
		req.Header.Set("Accept", "text/html")
		w := httptest.NewRecorder()

		m.guards().RequireOrganization(authorization.CapMemberList)(nextSentinel(t, &called)).ServeHTTP(w, req)

		if w.Code != http.StatusSeeOther {
			t.Errorf("expected status 303, got %d", w.Code)
		}
	})
}

func TestGuards_RequirePlatform(t *testing.T) {
	t.Run("platform admin passes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newGuardMocks(ctrl)
		m.expectSpan("web.Guards.RequirePlatform")
		m.authorizer.EXPECT().CheckPlatform(gomock.Any(), "admin", "user:list").
			Return(authorization.CheckResult{Success: true})
		called := false

		req := principalRequest("/app/admin/users", &authentication.Principal{UserID: "user-1", PlatformRole: "admin"})
		w := httptest.NewRecorder()

		m.guards().RequirePlatform(authorization.CapUserList)(nextSentinel(t, &called)).ServeHTTP(w, req)

		if !called {
			t.Error("next handler should run")
		}
	})

	t.Run("regular user is denied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newGuardMocks(ctrl)
		m.expectSpan("web.Guards.RequirePlatform")
		m.authorizer.EXPECT().CheckPlatform(gomock.Any(), "user", "user:list").
			Return(authorization.CheckResult{Success: false})
		m.expectAuthzFailure(ctrl, "user-1", "user:list")
		called := false

		req := principalRequest("/app/admin/users", &authentication.Principal{UserID: "user-1", PlatformRole: "user"})
		w := httptest.NewRecorder()

		m.guards().RequirePlatform(authorization.CapUserList)(nextSentinel(t, &called)).ServeHTTP(w, req)

		if called {
			t.Error("next handler should not run")
		}
		if w.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", w.Code)
		}
	})
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/authorization"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	htypes "github.com/KonektivaDev/alfaplus-base-saas/internal/http/types"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/authentication"
)

const (
	loginPath      = "/login"
	onboardingPath = "/onboarding"
	dashboardPath  = "/dashboard"
)

// Guards enforce the fixed access ladder on app routes: a session first,
// then an active organization, then the capability for the route. Browser
// requests are redirected to the page that fixes what is missing; API
// clients get the taxonomy error as JSON.
type Guards struct {
	authorizer authorization.AuthorizerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewGuards(
	authorizer authorization.AuthorizerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Guards {
	return &Guards{
		authorizer: authorizer,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func (g *Guards) deny(w http.ResponseWriter, r *http.Request, redirectTo string, err error) {
	if wantsHTML(r) {
		http.Redirect(w, r, redirectTo, http.StatusSeeOther)
		return
	}
	htypes.WriteError(w, err)
}

// RequireSession rejects anonymous requests. The login redirect carries the
// original URL so the client can resume after signing in.
func (g *Guards) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if authentication.PrincipalFromContext(r.Context()) == nil {
			callback := url.QueryEscape(r.URL.RequestURI())
			g.deny(w, r, loginPath+"?callbackURL="+callback, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireActiveOrganization sends sessions without an organization to
// onboarding. Runs after RequireSession.
func (g *Guards) RequireActiveOrganization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := authentication.PrincipalFromContext(r.Context())
		if p == nil || p.ActiveOrganizationID == "" {
			g.deny(w, r, onboardingPath, errcode.New(errcode.NoActiveOrganization, "No active organization."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePlatform gates a route on a platform-level capability.
func (g *Guards) RequirePlatform(capability authorization.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := g.tracer.Start(r.Context(), "web.Guards.RequirePlatform")
			defer span.End()

			p := authentication.PrincipalFromContext(ctx)
			if p == nil {
				callback := url.QueryEscape(r.URL.RequestURI())
				g.deny(w, r, loginPath+"?callbackURL="+callback, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
				return
			}

			if !g.authorizer.CheckPlatform(ctx, p.PlatformRole, string(capability)).Success {
				g.logger.Security().AuthzFailure(p.UserID, string(capability))
				g.deny(w, r, dashboardPath, errcode.New(errcode.Forbidden, "Forbidden."))
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOrganization gates a route on a capability within the session's
// active organization. The active-organization check runs first: without
// one the authorizer is never consulted.
func (g *Guards) RequireOrganization(capability authorization.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := g.tracer.Start(r.Context(), "web.Guards.RequireOrganization")
			defer span.End()

			p := authentication.PrincipalFromContext(ctx)
			if p == nil {
				callback := url.QueryEscape(r.URL.RequestURI())
				g.deny(w, r, loginPath+"?callbackURL="+callback, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
				return
			}
			if p.ActiveOrganizationID == "" {
				g.deny(w, r, onboardingPath, errcode.New(errcode.NoActiveOrganization, "No active organization."))
				return
			}

			result, err := g.authorizer.CheckOrganization(ctx, p.UserID, p.ActiveOrganizationID, string(capability))
			if err != nil {
				// Fail closed on infrastructure trouble.
				g.logger.Errorf("organization permission check failed: %v", err)
				g.deny(w, r, dashboardPath, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err))
				return
			}
			if !result.Success {
				g.logger.Security().AuthzFailure(p.UserID, string(capability))
				g.deny(w, r, dashboardPath, errcode.New(errcode.Forbidden, "Forbidden."))
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

// Package web assembles the HTTP surface: the session-guarded app routes,
// the bearer-authenticated admin API and the identity-stack webhooks.
package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/authorization"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/db"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/authentication"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/invitation"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/metrics"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/organization"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/session"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/status"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/user"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/webhooks"
)

// RouterConfig carries the assembled handlers and middlewares. The router
// itself only decides paths and guard order.
type RouterConfig struct {
	Organizations *organization.API
	Invitations   *invitation.API
	Users         *user.API
	Sessions      *session.API
	Webhooks      *webhooks.API

	Guards            *Guards
	SessionMiddleware *authentication.SessionMiddleware
	BearerMiddleware  *authentication.Middleware
}

func NewRouter(
	cfg RouterConfig,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	router.Use(
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
		db.TransactionMiddleware(dbClient, logger),
	)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)
	cfg.Webhooks.RegisterEndpoints(router)

	guards := cfg.Guards

	// App surface: browser clients with a session cookie. Guard order is
	// fixed: session, then active organization, then route capability.
	router.Route("/app", func(r chi.Router) {
		r.Use(cfg.SessionMiddleware.Authenticate)

		r.Group(func(r chi.Router) {
			r.Use(guards.RequireSession)

			r.Get("/me", cfg.Users.Me)
			r.Patch("/me", cfg.Users.UpdateProfile)
			r.Get("/me/sessions", cfg.Sessions.List)
			r.Delete("/me/sessions/{id}", cfg.Sessions.Revoke)

			r.Get("/onboarding/organizations", cfg.Organizations.ListMine)
			r.Post("/organizations", cfg.Organizations.CreateOrganization)
			r.Put("/organizations/active", cfg.Organizations.SetActive)
			r.Delete("/organizations/active", cfg.Organizations.ClearActive)

			r.Get("/invitations/{id}", cfg.Invitations.Get)
			r.Post("/invitations/{id}/accept", cfg.Invitations.Accept)
			r.Post("/invitations/{id}/reject", cfg.Invitations.Reject)
		})

		// Routes scoped to the active organization.
		r.Group(func(r chi.Router) {
			r.Use(guards.RequireSession, guards.RequireActiveOrganization)

			r.With(guards.RequireOrganization(authorization.CapOrganizationUpdate)).
				Get("/organizations/manage", cfg.Organizations.GetActive)
			r.With(guards.RequireOrganization(authorization.CapOrganizationUpdate)).
				Patch("/organizations/manage", cfg.Organizations.UpdateActive)

			r.With(guards.RequireOrganization(authorization.CapMemberList)).
				Get("/organizations/manage/members", cfg.Organizations.ListMembers)
			r.With(guards.RequireOrganization(authorization.CapMemberUpdateRole)).
				Patch("/organizations/manage/members/{userID}", cfg.Organizations.UpdateMemberRole)
			r.With(guards.RequireOrganization(authorization.CapMemberRemove)).
				Delete("/organizations/manage/members/{userID}", cfg.Organizations.RemoveMember)

			r.With(guards.RequireOrganization(authorization.CapInvitationCreate)).
				Get("/organizations/manage/invitations", cfg.Invitations.List)
			r.With(guards.RequireOrganization(authorization.CapInvitationCreate)).
				Post("/organizations/manage/invitations", cfg.Invitations.Create)
			r.With(guards.RequireOrganization(authorization.CapInvitationCancel)).
				Delete("/organizations/manage/invitations/{id}", cfg.Invitations.Cancel)
		})

		// Platform-admin pages.
		r.Group(func(r chi.Router) {
			r.Use(guards.RequireSession)

			r.With(guards.RequirePlatform(authorization.CapOrganizationList)).
				Get("/admin/organizations", cfg.Organizations.AdminList)
			r.With(guards.RequirePlatform(authorization.CapOrganizationCreate)).
				Post("/admin/organizations", cfg.Organizations.CreateOrganization)
			r.With(guards.RequirePlatform(authorization.CapOrganizationList)).
				Get("/admin/organizations/{id}", cfg.Organizations.AdminGet)
			r.With(guards.RequirePlatform(authorization.CapOrganizationUpdate)).
				Patch("/admin/organizations/{id}", cfg.Organizations.AdminUpdate)
			r.With(guards.RequirePlatform(authorization.CapOrganizationDelete)).
				Delete("/admin/organizations/{id}", cfg.Organizations.AdminDelete)
			r.With(guards.RequirePlatform(authorization.CapOrganizationList)).
				Get("/admin/organizations/{id}/members", cfg.Organizations.AdminListMembers)

			r.With(guards.RequirePlatform(authorization.CapUserList)).
				Get("/admin/users", cfg.Users.AdminList)
			r.With(guards.RequirePlatform(authorization.CapUserList)).
				Get("/admin/users/{id}", cfg.Users.AdminGet)
			r.With(guards.RequirePlatform(authorization.CapUserSetRole)).
				Patch("/admin/users/{id}/role", cfg.Users.AdminSetRole)
			r.With(guards.RequirePlatform(authorization.CapUserDelete)).
				Delete("/admin/users/{id}", cfg.Users.AdminDelete)
			r.With(guards.RequirePlatform(authorization.CapSessionRevoke)).
				Delete("/admin/users/{userID}/sessions", cfg.Sessions.AdminRevokeAll)
		})
	})

	// Machine surface: bearer JWT, no redirects, full admin reach.
	router.Route("/api/v0", func(r chi.Router) {
		r.Use(cfg.BearerMiddleware.Bearer)

		r.Get("/organizations", cfg.Organizations.AdminList)
		r.Get("/organizations/{id}", cfg.Organizations.AdminGet)
		r.Patch("/organizations/{id}", cfg.Organizations.AdminUpdate)
		r.Delete("/organizations/{id}", cfg.Organizations.AdminDelete)
		r.Get("/organizations/{id}/members", cfg.Organizations.AdminListMembers)

		r.Get("/users", cfg.Users.AdminList)
		r.Get("/users/{id}", cfg.Users.AdminGet)
		r.Patch("/users/{id}/role", cfg.Users.AdminSetRole)
		r.Delete("/users/{id}", cfg.Users.AdminDelete)
		r.Delete("/users/{userID}/sessions", cfg.Sessions.AdminRevokeAll)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}

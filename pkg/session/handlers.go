// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	htypes "github.com/KonektivaDev/alfaplus-base-saas/internal/http/types"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/authentication"
)

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(
	service ServiceInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		service: service,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// List returns the caller's sessions, newest first.
func (a *API) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "session.API.List")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil {
		htypes.WriteError(w, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
		return
	}

	sessions, err := a.service.ListUserSessions(ctx, p.UserID)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, sessions)
}

// Revoke deletes one of the caller's sessions.
func (a *API) Revoke(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "session.API.Revoke")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil {
		htypes.WriteError(w, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
		return
	}

	if err := a.service.RevokeSession(ctx, p.UserID, chi.URLParam(r, "id")); err != nil {
		htypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminRevokeAll drops every session a user holds.
func (a *API) AdminRevokeAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "session.API.AdminRevokeAll")
	defer span.End()

	if err := a.service.RevokeUserSessions(ctx, chi.URLParam(r, "userID")); err != nil {
		htypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

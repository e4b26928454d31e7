// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package invitation

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	htypes "github.com/KonektivaDev/alfaplus-base-saas/internal/http/types"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/authentication"
)

type API struct {
	service  ServiceInterface
	validate *validator.Validate

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
		service:  service,
		validate: validator.New(),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

type createInvitationRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

type createInvitationResponse struct {
	Invitation interface{} `json:"invitation"`
	Link       string      `json:"link"`
	Code       string      `json:"code"`
}

// Create issues an invitation for the caller's active organization.
func (a *API) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitation.API.Create")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil || p.ActiveOrganizationID == "" {
		htypes.WriteError(w, errcode.New(errcode.NoActiveOrganization, "No active organization."))
		return
	}

	var req createInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		htypes.WriteError(w, errcode.New(errcode.Validation, "Invalid request body."))
		return
	}
	if err := a.validate.Struct(&req); err != nil {
		htypes.WriteError(w, errcode.New(errcode.Validation, "Invalid request body."))
		return
	}

	inv, link, code, err := a.service.CreateInvitation(ctx, p.ActiveOrganizationID, p.UserID, req.Email, req.Role)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusCreated, createInvitationResponse{
		Invitation: inv,
		Link:       link,
		Code:       code,
	})
}

// Get returns a single invitation, the data behind the invite landing page.
func (a *API) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitation.API.Get")
	defer span.End()

	inv, err := a.service.GetInvitation(ctx, chi.URLParam(r, "id"))
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, inv)
}

func (a *API) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitation.API.List")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil || p.ActiveOrganizationID == "" {
		htypes.WriteError(w, errcode.New(errcode.NoActiveOrganization, "No active organization."))
		return
	}

	invitations, err := a.service.ListInvitations(ctx, p.ActiveOrganizationID)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, invitations)
}

func (a *API) Accept(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitation.API.Accept")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil {
		htypes.WriteError(w, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
		return
	}

	inv, err := a.service.AcceptInvitation(ctx, chi.URLParam(r, "id"), p.UserID, p.Email)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, inv)
}

func (a *API) Reject(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitation.API.Reject")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil {
		htypes.WriteError(w, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
		return
	}

	inv, err := a.service.RejectInvitation(ctx, chi.URLParam(r, "id"), p.Email)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, inv)
}

func (a *API) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitation.API.Cancel")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil || p.ActiveOrganizationID == "" {
		htypes.WriteError(w, errcode.New(errcode.NoActiveOrganization, "No active organization."))
		return
	}

	inv, err := a.service.CancelInvitation(ctx, chi.URLParam(r, "id"), p.ActiveOrganizationID)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, inv)
}

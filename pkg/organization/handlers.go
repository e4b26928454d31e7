// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	htypes "github.com/KonektivaDev/alfaplus-base-saas/internal/http/types"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/authentication"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

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

type createOrganizationRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"required,max=50"`
}

type updateOrganizationRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Slug *string `json:"slug,omitempty" validate:"omitempty,min=1,max=50"`
}

type setActiveOrganizationRequest struct {
	OrganizationID string `json:"organizationId" validate:"required"`
}

type updateMemberRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (a *API) decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errcode.New(errcode.Validation, "Invalid request body.")
	}
	if err := a.validate.Struct(v); err != nil {
		return errcode.New(errcode.Validation, "Invalid request body.")
	}
	return nil
}

// CreateOrganization handles POST with the caller as initial owner.
func (a *API) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "organization.API.CreateOrganization")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil {
		htypes.WriteError(w, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
		return
	}

	var req createOrganizationRequest
	if err := a.decode(r, &req); err != nil {
		htypes.WriteError(w, err)
		return
	}
	if !slugPattern.MatchString(req.Slug) {
		htypes.WriteError(w, errcode.New(errcode.Validation, "Slug must be lowercase letters, digits and hyphens."))
		return
	}

	org, err := a.service.CreateOrganization(ctx, p.UserID, req.Name, req.Slug)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusCreated, org)
}

// ListMine returns the caller's organizations, the onboarding picker data.
func (a *API) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "organization.API.ListMine")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil {
		htypes.WriteError(w, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
		return
	}

	orgs, err := a.service.ListUserOrganizations(ctx, p.UserID)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, orgs)
}

func (a *API) SetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "organization.API.SetActive")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil {
		htypes.WriteError(w, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
		return
	}

	var req setActiveOrganizationRequest
	if err := a.decode(r, &req); err != nil {
		htypes.WriteError(w, err)
		return
	}

	user, err := a.service.SetActiveOrganization(ctx, p.UserID, req.OrganizationID)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, user)
}

func (a *API) ClearActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "organization.API.ClearActive")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil {
		htypes.WriteError(w, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
		return
	}

	user, err := a.service.ClearActiveOrganization(ctx, p.UserID)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, user)
}

// GetActive returns the caller's active organization, the manage page data.
func (a *API) GetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "organization.API.GetActive")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil || p.ActiveOrganizationID == "" {
		htypes.WriteError(w, errcode.New(errcode.NoActiveOrganization, "No active organization."))
		return
	}

	org, err := a.service.GetOrganization(ctx, p.ActiveOrganizationID)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, org)
}

func (a *API) UpdateActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "organization.API.UpdateActive")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil || p.ActiveOrganizationID == "" {
		htypes.WriteError(w, errcode.New(errcode.NoActiveOrganization, "No active organization."))
		return
	}

	a.update(w, r, p.ActiveOrganizationID)
}

func (a *API) update(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	var req updateOrganizationRequest
	if err := a.decode(r, &req); err != nil {
		htypes.WriteError(w, err)
		return
	}

	o := &types.Organization{ID: id}
	var paths []string
	if req.Name != nil {
		o.Name = *req.Name
		paths = append(paths, "name")
	}
	if req.Slug != nil {
		if !slugPattern.MatchString(*req.Slug) {
			htypes.WriteError(w, errcode.New(errcode.Validation, "Slug must be lowercase letters, digits and hyphens."))
			return
		}
		o.Slug = *req.Slug
		paths = append(paths, "slug")
	}
	if len(paths) == 0 {
		htypes.WriteError(w, errcode.New(errcode.Validation, "Nothing to update."))
		return
	}

	org, err := a.service.UpdateOrganization(ctx, o, paths)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, org)
}

func (a *API) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "organization.API.ListMembers")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil || p.ActiveOrganizationID == "" {
		htypes.WriteError(w, errcode.New(errcode.NoActiveOrganization, "No active organization."))
		return
	}

	members, err := a.service.ListMembers(ctx, p.ActiveOrganizationID)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, members)
}

func (a *API) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "organization.API.UpdateMemberRole")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil || p.ActiveOrganizationID == "" {
		htypes.WriteError(w, errcode.New(errcode.NoActiveOrganization, "No active organization."))
		return
	}

	var req updateMemberRoleRequest
	if err := a.decode(r, &req); err != nil {
		htypes.WriteError(w, err)
		return
	}

	member, err := a.service.UpdateMemberRole(ctx, p.ActiveOrganizationID, chi.URLParam(r, "userID"), req.Role)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, member)
}

func (a *API) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "organization.API.RemoveMember")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil || p.ActiveOrganizationID == "" {
		htypes.WriteError(w, errcode.New(errcode.NoActiveOrganization, "No active organization."))
		return
	}

	if err := a.service.RemoveMember(ctx, p.ActiveOrganizationID, chi.URLParam(r, "userID")); err != nil {
		htypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Admin surface: operates on explicit organization ids rather than the
// caller's active organization.

func (a *API) AdminList(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "organization.API.AdminList")
	defer span.End()

	orgs, err := a.service.ListOrganizations(ctx)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, orgs)
}

func (a *API) AdminGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "organization.API.AdminGet")
	defer span.End()

	org, err := a.service.GetOrganization(ctx, chi.URLParam(r, "id"))
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, org)
}

func (a *API) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "organization.API.AdminUpdate")
	defer span.End()

	a.update(w, r, chi.URLParam(r, "id"))
}

func (a *API) AdminDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "organization.API.AdminDelete")
	defer span.End()

	if err := a.service.DeleteOrganization(ctx, chi.URLParam(r, "id")); err != nil {
		htypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) AdminListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "organization.API.AdminListMembers")
	defer span.End()

	members, err := a.service.ListMembers(ctx, chi.URLParam(r, "id"))
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, members)
}

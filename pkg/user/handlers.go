// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package user

import (
	"encoding/json"
	"net/http"
	"strconv"

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

type updateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Image *string `json:"image,omitempty" validate:"omitempty,url"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

// Me returns the caller's profile.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "user.API.Me")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil {
		htypes.WriteError(w, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
		return
	}

	u, err := a.service.GetUser(ctx, p.UserID)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, u)
}

func (a *API) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "user.API.UpdateProfile")
	defer span.End()

	p := authentication.PrincipalFromContext(ctx)
	if p == nil {
		htypes.WriteError(w, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		htypes.WriteError(w, errcode.New(errcode.Validation, "Invalid request body."))
		return
	}
	if err := a.validate.Struct(&req); err != nil {
		htypes.WriteError(w, errcode.New(errcode.Validation, "Invalid request body."))
		return
	}

	u := &types.User{ID: p.UserID}
	var paths []string
	if req.Name != nil {
		u.Name = *req.Name
		paths = append(paths, "name")
	}
	if req.Image != nil {
		u.Image = *req.Image
		paths = append(paths, "image")
	}
	if len(paths) == 0 {
		htypes.WriteError(w, errcode.New(errcode.Validation, "Nothing to update."))
		return
	}

	updated, err := a.service.UpdateProfile(ctx, u, paths)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, updated)
}

// AdminList returns a page of users for the admin user table.
func (a *API) AdminList(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "user.API.AdminList")
	defer span.End()

	page, _ := strconv.ParseUint(r.URL.Query().Get("page"), 10, 64)

	users, err := a.service.ListUsers(ctx, page)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, users)
}

func (a *API) AdminGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "user.API.AdminGet")
	defer span.End()

	u, err := a.service.GetUser(ctx, chi.URLParam(r, "id"))
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, u)
}

func (a *API) AdminSetRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "user.API.AdminSetRole")
	defer span.End()

	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		htypes.WriteError(w, errcode.New(errcode.Validation, "Invalid request body."))
		return
	}
	if err := a.validate.Struct(&req); err != nil {
		htypes.WriteError(w, errcode.New(errcode.Validation, "Invalid request body."))
		return
	}

	u, err := a.service.SetRole(ctx, chi.URLParam(r, "id"), req.Role)
	if err != nil {
		htypes.WriteError(w, err)
		return
	}

	htypes.WriteData(w, http.StatusOK, u)
}

func (a *API) AdminDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "user.API.AdminDelete")
	defer span.End()

	if err := a.service.DeleteUser(ctx, chi.URLParam(r, "id")); err != nil {
		htypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

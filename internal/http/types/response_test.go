// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", errcode.New(errcode.Unauthenticated, "Unauthenticated."), http.StatusUnauthorized},
		{"forbidden", errcode.New(errcode.Forbidden, "Forbidden."), http.StatusForbidden},
		{"not found", errcode.New(errcode.NotFound, "Organization not found."), http.StatusNotFound},
		{"validation", errcode.New(errcode.Validation, "Name is required."), http.StatusBadRequest},
		{"conflict", errcode.New(errcode.Conflict, "Slug already taken."), http.StatusConflict},
		{"no active organization", errcode.New(errcode.NoActiveOrganization, "No active organization."), http.StatusConflict},
		{"unexpected", errcode.Wrap(errcode.Unexpected, "Unexpected error.", errors.New("boom")), http.StatusInternalServerError},
		{"raw error reports 500", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusOf(tc.err); got != tc.want {
				t.Errorf("expected status %d, got %d", tc.want, got)
			}
		})
	}
}

func TestWriteData(t *testing.T) {
	w := httptest.NewRecorder()

	WriteData(w, http.StatusCreated, map[string]string{"id": "org-1"})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var resp struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Data["id"] != "org-1" {
		t.Errorf("unexpected data payload: %v", resp.Data)
	}
}

func TestWriteError(t *testing.T) {
	t.Run("taxonomy error keeps code and message", func(t *testing.T) {
		w := httptest.NewRecorder()

		WriteError(w, errcode.New(errcode.NoActiveOrganization, "No active organization."))

		if w.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d", w.Code)
		}

		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if resp.Error.Code != "NO_ACTIVE_ORGANIZATION" {
			t.Errorf("unexpected code %s", resp.Error.Code)
		}
		if resp.Error.Message != "No active organization." {
			t.Errorf("unexpected message %s", resp.Error.Message)
		}
	})

	t.Run("wrapped cause never leaks into the body", func(t *testing.T) {
		w := httptest.NewRecorder()

		WriteError(w, errcode.Wrap(errcode.Unexpected, "Unexpected error.", errors.New("pq: connection reset")))

		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if resp.Error.Message != "Unexpected error." {
			t.Errorf("cause leaked: %s", resp.Error.Message)
		}
	})

	t.Run("untyped error reports UNHANDLED", func(t *testing.T) {
		w := httptest.NewRecorder()

		WriteError(w, errors.New("boom"))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", w.Code)
		}

		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if resp.Error.Code != "UNHANDLED" {
			t.Errorf("unexpected code %s", resp.Error.Code)
		}
	})
}

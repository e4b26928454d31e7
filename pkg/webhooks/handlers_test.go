// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
)

func TestAPI_Registration(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		setupMocks func(*MockServiceInterface)
		wantStatus int
	}{
		{
			name: "ok",
			body: `{"id": "identity-1", "traits": {"email": "a@example.com", "name": "Ada"}}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().HandleRegistration(gomock.Any(), "identity-1", "a@example.com", "Ada").Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid body",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "service failure",
			body: `{"id": "identity-1", "traits": {"email": "a@example.com"}}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().HandleRegistration(gomock.Any(), "identity-1", "a@example.com", "").
					Return(errors.New("storage down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			if tc.setupMocks != nil {
				tc.setupMocks(mockService)
			}

			mux := chi.NewMux()
			NewAPI(mockService).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/registration", bytes.NewBufferString(tc.body))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, w.Code)
			}
		})
	}
}

func TestAPI_Session(t *testing.T) {
	t.Run("returns the issued token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		mockService := NewMockServiceInterface(ctrl)
		mockService.EXPECT().HandleSessionHook(gomock.Any(), gomock.Any()).
			Return(&SessionHookResponse{SessionToken: "tok", ActiveOrganizationID: "org-1", ExpiresAt: expires}, nil)

		mux := chi.NewMux()
		NewAPI(mockService).RegisterEndpoints(mux)

		body := `{"identity": {"id": "identity-1", "traits": {"email": "a@example.com"}}, "ip_address": "10.0.0.1"}`
		req := httptest.NewRequest(http.MethodPost, "/webhooks/session", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		var resp SessionHookResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if resp.SessionToken != "tok" || resp.ActiveOrganizationID != "org-1" {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("service failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := NewMockServiceInterface(ctrl)
		mockService.EXPECT().HandleSessionHook(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("storage down"))

		mux := chi.NewMux()
		NewAPI(mockService).RegisterEndpoints(mux)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/session", bytes.NewBufferString(`{"identity": {"id": "x"}}`))
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", w.Code)
		}
	})
}

func TestAPI_Token(t *testing.T) {
	t.Run("returns the claim set", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		resp := &TokenHookResponse{}
		resp.Session.IDToken = map[string]interface{}{"organizations": []string{"org-1"}}
		resp.Session.AccessToken = map[string]interface{}{"organizations": []string{"org-1"}}

		mockService := NewMockServiceInterface(ctrl)
		mockService.EXPECT().HandleTokenHook(gomock.Any(), gomock.Any()).Return(resp, nil)

		mux := chi.NewMux()
		NewAPI(mockService).RegisterEndpoints(mux)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/token", bytes.NewBufferString(`{}`))
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		var decoded TokenHookResponse
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if decoded.Session.IDToken["organizations"] == nil {
			t.Error("expected organizations claim")
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mux := chi.NewMux()
		NewAPI(NewMockServiceInterface(ctrl)).RegisterEndpoints(mux)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/token", bytes.NewBufferString(`{`))
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

// Package types holds the JSON envelope shared by every HTTP handler and
// the mapping from the service error taxonomy to HTTP status codes.
package types

import (
	"encoding/json"
	"net/http"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
)

type Response struct {
	Data interface{} `json:"data,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

var codeStatus = map[errcode.Code]int{
	errcode.Unauthenticated:      http.StatusUnauthorized,
	errcode.Forbidden:            http.StatusForbidden,
	errcode.NotFound:             http.StatusNotFound,
	errcode.Validation:           http.StatusBadRequest,
	errcode.Conflict:             http.StatusConflict,
	errcode.NoActiveOrganization: http.StatusConflict,
	errcode.Unexpected:           http.StatusInternalServerError,
	errcode.Unhandled:            http.StatusInternalServerError,
}

// StatusOf maps a service error to its HTTP status. Unknown codes report 500.
func StatusOf(err error) int {
	if s, ok := codeStatus[errcode.CodeOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, Response{Data: data})
}

func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusOf(err), ErrorResponse{
		Error: ErrorBody{
			Code:    string(errcode.CodeOf(err)),
			Message: errcode.MessageOf(err),
		},
	})
}

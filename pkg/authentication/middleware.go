// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"
	"strings"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	htypes "github.com/KonektivaDev/alfaplus-base-saas/internal/http/types"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
)

// Middleware authenticates machine clients on the admin API with a bearer
// JWT. Disabled mode passes every request through, for local development.
type Middleware struct {
	verifier TokenVerifierInterface
	enabled  bool

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(
	verifier TokenVerifierInterface,
	enabled bool,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Middleware {
	return &Middleware{
		verifier: verifier,
		enabled:  enabled,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (m *Middleware) Bearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Bearer")
		defer span.End()

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			m.logger.Security().AuthnFailure("missing bearer token")
			htypes.WriteError(w, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
			return
		}

		subject, err := m.verifier.VerifyToken(ctx, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			m.logger.Security().AuthnFailure(subject)
			htypes.WriteError(w, errcode.New(errcode.Unauthenticated, "Unauthenticated."))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(ctx, subject)))
	})
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"net/http"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

// SessionTokenHeader carries the session token for non-browser clients that
// do not send the cookie.
const SessionTokenHeader = "X-Session-Token"

// Principal is the authenticated caller attached to the request context by
// the session middleware. ActiveOrganizationID is the session snapshot, not
// a live read of the user row.
type Principal struct {
	UserID               string
	SessionID            string
	Email                string
	PlatformRole         string
	ActiveOrganizationID string
}

var principalContextKey = struct{ name string }{"principal"}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext retrieves the authenticated caller, or nil when the
// request carried no valid session.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey).(*Principal)
	return p
}

// SessionResolverInterface resolves an opaque session token to the session
// row and its user.
type SessionResolverInterface interface {
	ResolveSession(ctx context.Context, token string) (*types.Session, *types.User, error)
}

// SessionMiddleware resolves the session cookie (or token header) into a
// Principal. It never rejects requests itself: an absent or invalid session
// simply leaves the context without a principal and the route guards decide
// what that means.
type SessionMiddleware struct {
	sessions   SessionResolverInterface
	cookieName string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewSessionMiddleware(
	sessions SessionResolverInterface,
	cookieName string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

func (m *SessionMiddleware) token(r *http.Request) string {
	if c, err := r.Cookie(m.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get(SessionTokenHeader)
}

func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "authentication.SessionMiddleware.Authenticate")
		defer span.End()

		token := m.token(r)
		if token == "" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		session, user, err := m.sessions.ResolveSession(ctx, token)
		if err != nil {
			if !errcode.IsCode(err, errcode.NotFound) {
				m.logger.Errorf("failed to resolve session: %v", err)
			}
			m.logger.Security().AuthnFailure("session")
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		activeOrg := ""
		if session.ActiveOrganizationID != nil {
			activeOrg = *session.ActiveOrganizationID
		}

		ctx = WithPrincipal(ctx, &Principal{
			UserID:               user.ID,
			SessionID:            session.ID,
			Email:                user.Email,
			PlatformRole:         user.Role,
			ActiveOrganizationID: activeOrg,
		})
		ctx = WithUserID(ctx, user.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

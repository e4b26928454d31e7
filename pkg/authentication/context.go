// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package authentication

import "context"

type userIDKey struct{}

// WithUserID stamps the authenticated user id on the context. Both the
// bearer middleware and the session middleware set it, so handlers read one
// identity regardless of how the request authenticated.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserID returns the authenticated user id, or false for anonymous
// requests.
func GetUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package authentication

import "context"

// NoopVerifier stands in when machine authentication is disabled. The raw
// token is taken as the subject so local development still gets a stable
// identity.
type NoopVerifier struct{}

func NewNoopVerifier() *NoopVerifier {
	return &NoopVerifier{}
}

func (n *NoopVerifier) VerifyToken(ctx context.Context, rawIDToken string) (string, error) {
	return rawIDToken, nil
}

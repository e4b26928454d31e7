// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var otelHTTPClient = http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

// instrumentedContext makes go-oidc use the traced HTTP client for discovery
// and JWKS fetches.
func instrumentedContext(ctx context.Context) context.Context {
	return oidc.ClientContext(ctx, &otelHTTPClient)
}

// NewProvider resolves the issuer's well-known OIDC configuration.
func NewProvider(ctx context.Context, issuer string) (*oidc.Provider, error) {
	provider, err := oidc.NewProvider(instrumentedContext(ctx), issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %v", err)
	}

	return provider, nil
}

// NewProviderWithJWKS builds a verifier against an explicit JWKS URL,
// bypassing discovery. Used when the issuer's well-known endpoint is not
// reachable from this service.
func NewProviderWithJWKS(ctx context.Context, issuer, jwksURL string) (*oidc.IDTokenVerifier, error) {
	keySet := oidc.NewRemoteKeySet(instrumentedContext(ctx), jwksURL)

	return oidc.NewVerifier(issuer, keySet, &oidc.Config{
		SkipClientIDCheck: true,
		SkipIssuerCheck:   false,
	}), nil
}

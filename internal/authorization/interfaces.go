// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

// CheckResult is the outcome of a permission check. Callers branch on
// Success; there are no partial results.
type CheckResult struct {
	Success bool `json:"success"`
}

type AuthorizerInterface interface {
	CheckPlatform(ctx context.Context, role, capability string) CheckResult
	CheckOrganization(ctx context.Context, userID, organizationID, capability string) (CheckResult, error)
}

// MemberStorageInterface is the subset of storage the authorizer needs to
// resolve organization-scoped role sets.
type MemberStorageInterface interface {
	GetMember(ctx context.Context, organizationID, userID string) (*types.Member, error)
}

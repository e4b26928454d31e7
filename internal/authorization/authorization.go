// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/storage"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
)

var _ AuthorizerInterface = (*Authorizer)(nil)

// Authorizer answers capability checks against the static role tables.
// Platform checks are pure lookups; organization checks resolve the member
// role set for the (user, organization) pair first.
type Authorizer struct {
	members MemberStorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authorizer) CheckPlatform(ctx context.Context, role, capability string) CheckResult {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckPlatform")
	defer span.End()

	return CheckResult{Success: platformRoleGrants(PlatformRole(role), Capability(capability))}
}

// CheckOrganization resolves the membership row and tests the role set. A
// missing membership is a plain deny, not an error: only infrastructure
// failures surface as error.
func (a *Authorizer) CheckOrganization(ctx context.Context, userID, organizationID, capability string) (CheckResult, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckOrganization")
	defer span.End()

	member, err := a.members.GetMember(ctx, organizationID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return CheckResult{Success: false}, nil
		}
		a.logger.Errorf("failed to resolve membership for authorization check: %v", err)
		return CheckResult{Success: false}, err
	}

	granted := roleSetGrants(ParseRoleSet(member.Role), Capability(capability))
	if !granted {
		a.logger.Security().AuthzFailure(userID, capability)
	}

	return CheckResult{Success: granted}, nil
}

func NewAuthorizer(members MemberStorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.members = members
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package authorization

// Capability is a named permission checked against a role.
type Capability string

// Platform-level capabilities, granted by the user's global role.
const (
	CapOrganizationList   Capability = "organization:list"
	CapOrganizationCreate Capability = "organization:create"
	CapUserList           Capability = "user:list"
	CapUserSetRole        Capability = "user:set-role"
	CapUserDelete         Capability = "user:delete"
	CapSessionList        Capability = "session:list"
	CapSessionRevoke      Capability = "session:revoke"
)

// Organization-scoped capabilities, granted by the member role set for the
// session's active organization. organization:update/delete appear in both
// domains: a platform admin may touch any organization, a member only their
// active one.
const (
	CapOrganizationUpdate Capability = "organization:update"
	CapOrganizationDelete Capability = "organization:delete"
	CapMemberList         Capability = "member:list"
	CapMemberUpdateRole   Capability = "member:update-role"
	CapMemberRemove       Capability = "member:remove"
	CapInvitationCreate   Capability = "invitation:create"
	CapInvitationCancel   Capability = "invitation:cancel"
)

var platformCapabilities = map[PlatformRole]map[Capability]struct{}{
	PlatformAdmin: {
		CapOrganizationList:   {},
		CapOrganizationCreate: {},
		CapOrganizationUpdate: {},
		CapOrganizationDelete: {},
		CapUserList:           {},
		CapUserSetRole:        {},
		CapUserDelete:         {},
		CapSessionList:        {},
		CapSessionRevoke:      {},
	},
	PlatformUser: {
		// Any signed-in user may create an organization for themselves.
		CapOrganizationCreate: {},
	},
}

var orgCapabilities = map[OrgRole]map[Capability]struct{}{
	RoleOwner: {
		CapOrganizationUpdate: {},
		CapOrganizationDelete: {},
		CapMemberList:         {},
		CapMemberUpdateRole:   {},
		CapMemberRemove:       {},
		CapInvitationCreate:   {},
		CapInvitationCancel:   {},
	},
	RoleAdmin: {
		CapOrganizationUpdate: {},
		CapMemberList:         {},
		CapMemberUpdateRole:   {},
		CapMemberRemove:       {},
		CapInvitationCreate:   {},
		CapInvitationCancel:   {},
	},
	RoleMember: {
		CapMemberList: {},
	},
}

func platformRoleGrants(role PlatformRole, capability Capability) bool {
	caps, ok := platformCapabilities[role]
	if !ok {
		return false
	}
	_, ok = caps[capability]
	return ok
}

func roleSetGrants(rs RoleSet, capability Capability) bool {
	for role := range rs {
		if caps, ok := orgCapabilities[role]; ok {
			if _, ok := caps[capability]; ok {
				return true
			}
		}
	}
	return false
}

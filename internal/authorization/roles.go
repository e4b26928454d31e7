// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"sort"
	"strings"
)

// OrgRole is a single role tag granted by a membership.
type OrgRole string

const (
	RoleOwner  OrgRole = "owner"
	RoleAdmin  OrgRole = "admin"
	RoleMember OrgRole = "member"
)

// PlatformRole is the global role stored on the user record.
type PlatformRole string

const (
	PlatformAdmin PlatformRole = "admin"
	PlatformUser  PlatformRole = "user"
)

// RoleSet is the parsed form of the comma-joined role tags stored on a
// member row. Unknown tags are dropped at parse time so a bad row can
// never grant anything.
type RoleSet map[OrgRole]struct{}

func ParseRoleSet(joined string) RoleSet {
	rs := make(RoleSet)
	for _, tag := range strings.Split(joined, ",") {
		switch r := OrgRole(strings.TrimSpace(tag)); r {
		case RoleOwner, RoleAdmin, RoleMember:
			rs[r] = struct{}{}
		}
	}
	return rs
}

func (rs RoleSet) Has(role OrgRole) bool {
	_, ok := rs[role]
	return ok
}

func (rs RoleSet) Add(role OrgRole) {
	rs[role] = struct{}{}
}

// String renders the set back to the comma-joined storage form, sorted for
// determinism.
func (rs RoleSet) String() string {
	tags := make([]string, 0, len(rs))
	for r := range rs {
		tags = append(tags, string(r))
	}
	sort.Strings(tags)
	return strings.Join(tags, ",")
}

// ValidOrgRole reports whether the comma-joined input contains at least one
// known role tag.
func ValidOrgRole(joined string) bool {
	return len(ParseRoleSet(joined)) > 0
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package cache

import "testing"

func TestTagNaming(t *testing.T) {
	testCases := []struct {
		name     string
		got      string
		expected string
	}{
		{name: "global user", got: GlobalTag(KindUser), expected: "global:user"},
		{name: "global organization", got: GlobalTag(KindOrganization), expected: "global:organization"},
		{name: "user by id", got: IDTag(KindUser, "u-1"), expected: "id:user-u-1"},
		{name: "organization by id", got: IDTag(KindOrganization, "o-1"), expected: "id:organization-o-1"},
		{name: "org scoped kind", got: OrganizationTag(KindInvitation, "o-1"), expected: "organization:invitation-o-1"},
		{name: "org scoped entity", got: OrganizationIDTag(KindInvitation, "o-1", "i-9"), expected: "organization:invitation-o-1-i-9"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, tc.got)
			}
		})
	}
}

// Tags must never collide across entity kinds for equal ids.
func TestTagCollision(t *testing.T) {
	if GlobalTag(KindUser) == GlobalTag(KindOrganization) {
		t.Error("global tags collide across kinds")
	}
	if IDTag(KindUser, "x") == IDTag(KindOrganization, "x") {
		t.Error("id tags collide across kinds")
	}
}

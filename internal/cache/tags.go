// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

// Package cache implements the tag-based invalidation layer consulted by the
// page-rendering cache. Tags are a pure naming convention: deterministic and
// collision-free across entity kinds.
package cache

import "fmt"

type Kind string

const (
	KindUser         Kind = "user"
	KindOrganization Kind = "organization"
	KindInvitation   Kind = "invitation"
)

// GlobalTag covers every cached read of an entity kind.
func GlobalTag(kind Kind) string {
	return fmt.Sprintf("global:%s", kind)
}

// IDTag covers cached reads of one entity.
func IDTag(kind Kind, id string) string {
	return fmt.Sprintf("id:%s-%s", kind, id)
}

// OrganizationTag covers cached reads of a kind scoped to one organization.
func OrganizationTag(kind Kind, organizationID string) string {
	return fmt.Sprintf("organization:%s-%s", kind, organizationID)
}

// OrganizationIDTag covers one entity within one organization.
func OrganizationIDTag(kind Kind, organizationID, id string) string {
	return fmt.Sprintf("organization:%s-%s-%s", kind, organizationID, id)
}

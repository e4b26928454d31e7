// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	Image string `db:"image" json:"image,omitempty"`
	// Role is the platform-level role, "admin" or "user".
	Role string `db:"role" json:"role"`
	// ActiveOrganizationID points at the organization the user currently
	// operates within. Not a DB foreign key: a dangling pointer is read as
	// "no active organization", never as an error.
	ActiveOrganizationID *string   `db:"active_organization_id" json:"activeOrganizationId,omitempty"`
	CreatedAt            time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time `db:"updated_at" json:"updatedAt"`
}

type Organization struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	// MemberCount is populated on admin listings only.
	MemberCount int `db:"member_count" json:"memberCount,omitempty"`
}

type Member struct {
	ID             string `db:"id" json:"id"`
	OrganizationID string `db:"organization_id" json:"organizationId"`
	UserID         string `db:"user_id" json:"userId"`
	// Role is a comma-joined set of role tags, e.g. "owner" or "owner,admin".
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationRejected = "rejected"
	InvitationCanceled = "canceled"
)

type Invitation struct {
	ID             string    `db:"id" json:"id"`
	OrganizationID string    `db:"organization_id" json:"organizationId"`
	Email          string    `db:"email" json:"email"`
	Role           string    `db:"role" json:"role"`
	Status         string    `db:"status" json:"status"`
	ExpiresAt      time.Time `db:"expires_at" json:"expiresAt"`
	InviterID      string    `db:"inviter_id" json:"inviterId"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

type Session struct {
	ID     string `db:"id" json:"id"`
	Token  string `db:"token" json:"-"`
	UserID string `db:"user_id" json:"userId"`
	// ActiveOrganizationID is the snapshot hydrated at session creation so
	// per-request checks avoid a join against the users table.
	ActiveOrganizationID *string   `db:"active_organization_id" json:"activeOrganizationId,omitempty"`
	IPAddress            string    `db:"ip_address" json:"ipAddress,omitempty"`
	UserAgent            string    `db:"user_agent" json:"userAgent,omitempty"`
	ExpiresAt            time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt            time.Time `db:"created_at" json:"createdAt"`
}

// OrganizationUser is a member joined with identity details for listings.
type OrganizationUser struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import "time"

type KratosIdentity struct {
	ID     string       `json:"id"`
	Traits KratosTraits `json:"traits"`
}

type KratosTraits struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// SessionHookRequest is the body Kratos posts from its after-login hook.
type SessionHookRequest struct {
	Identity  KratosIdentity `json:"identity"`
	IPAddress string         `json:"ip_address,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
}

type SessionHookResponse struct {
	SessionToken         string    `json:"session_token"`
	ActiveOrganizationID string    `json:"active_organization_id,omitempty"`
	ExpiresAt            time.Time `json:"expires_at"`
}

// TokenHookResponse is the shape Hydra expects back from its token hook:
// extra claims to fold into the issued tokens.
type TokenHookResponse struct {
	Session struct {
		IDToken     map[string]interface{} `json:"id_token,omitempty"`
		AccessToken map[string]interface{} `json:"access_token,omitempty"`
	} `json:"session"`
}

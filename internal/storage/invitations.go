// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

func (s *Storage) CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvitation")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation ID: %w", err)
	}

	var created types.Invitation
	err = s.db.Statement(ctx).
		Insert("invitations").
		Columns("id", "organization_id", "email", "role", "status", "expires_at", "inviter_id").
		Values(id.String(), i.OrganizationID, i.Email, i.Role, types.InvitationPending, i.ExpiresAt, i.InviterID).
		Suffix("RETURNING id, organization_id, email, role, status, expires_at, inviter_id, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.OrganizationID, &created.Email, &created.Role, &created.Status, &created.ExpiresAt, &created.InviterID, &created.CreatedAt)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert invitation: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetInvitationByID(ctx context.Context, id string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInvitationByID")
	defer span.End()

	var i types.Invitation
	err := s.db.Statement(ctx).
		Select("id", "organization_id", "email", "role", "status", "expires_at", "inviter_id", "created_at").
		From("invitations").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&i.ID, &i.OrganizationID, &i.Email, &i.Role, &i.Status, &i.ExpiresAt, &i.InviterID, &i.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return &i, nil
}

func (s *Storage) ListInvitationsByOrganizationID(ctx context.Context, organizationID string) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListInvitationsByOrganizationID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("id", "organization_id", "email", "role", "status", "expires_at", "inviter_id", "created_at").
		From("invitations").
		Where(sq.Eq{"organization_id": organizationID}).
		OrderBy("created_at DESC")

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*types.Invitation
	for rows.Next() {
		var i types.Invitation
		if err := rows.Scan(&i.ID, &i.OrganizationID, &i.Email, &i.Role, &i.Status, &i.ExpiresAt, &i.InviterID, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, &i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invitations, nil
}

// UpdateInvitationStatus transitions an invitation from one status to
// another. The from guard makes the transition single-shot: a row that
// already left the from status is not matched and ErrNotFound is returned.
func (s *Storage) UpdateInvitationStatus(ctx context.Context, id, from, to string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateInvitationStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("invitations").
		Set("status", to).
		Where(sq.Eq{
			"id":     id,
			"status": from,
		}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update invitation status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

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

func (s *Storage) AddMember(ctx context.Context, organizationID, userID, role string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMember")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate member ID: %w", err)
	}

	_, err = s.db.Statement(ctx).
		Insert("members").
		Columns("id", "organization_id", "user_id", "role").
		Values(id.String(), organizationID, userID, role).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return "", ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return "", ErrForeignKeyViolation
		}
		return "", fmt.Errorf("failed to add member: %w", err)
	}

	return id.String(), nil
}

func (s *Storage) GetMember(ctx context.Context, organizationID, userID string) (*types.Member, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMember")
	defer span.End()

	var m types.Member
	err := s.db.Statement(ctx).
		Select("id", "organization_id", "user_id", "role", "created_at").
		From("members").
		Where(sq.Eq{
			"organization_id": organizationID,
			"user_id":         userID,
		}).
		QueryRowContext(ctx).
		Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &m, nil
}

func (s *Storage) ListMembersByOrganizationID(ctx context.Context, organizationID string) ([]*types.Member, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembersByOrganizationID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("id", "organization_id", "user_id", "role", "created_at").
		From("members").
		Where(sq.Eq{"organization_id": organizationID}).
		OrderBy("created_at")

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*types.Member
	for rows.Next() {
		var m types.Member
		if err := rows.Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

// ListOrganizationUsers joins members with users so listings carry emails
// without a second round trip per member.
func (s *Storage) ListOrganizationUsers(ctx context.Context, organizationID string) ([]*types.OrganizationUser, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListOrganizationUsers")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("m.user_id", "u.email", "m.role").
		From("members m").
		Join("users u ON u.id = m.user_id").
		Where(sq.Eq{"m.organization_id": organizationID}).
		OrderBy("m.created_at")

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization users: %w", err)
	}
	defer rows.Close()

	var users []*types.OrganizationUser
	for rows.Next() {
		var u types.OrganizationUser
		if err := rows.Scan(&u.UserID, &u.Email, &u.Role); err != nil {
			return nil, fmt.Errorf("failed to scan organization user: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

func (s *Storage) UpdateMemberRole(ctx context.Context, organizationID, userID, role string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMemberRole")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("members").
		Set("role", role).
		Where(sq.Eq{
			"organization_id": organizationID,
			"user_id":         userID,
		}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
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

func (s *Storage) RemoveMember(ctx context.Context, organizationID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.RemoveMember")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("members").
		Where(sq.Eq{
			"organization_id": organizationID,
			"user_id":         userID,
		}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
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

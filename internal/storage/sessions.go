// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

func (s *Storage) CreateSession(ctx context.Context, sess *types.Session) (*types.Session, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateSession")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	var created types.Session
	err = s.db.Statement(ctx).
		Insert("sessions").
		Columns("id", "token", "user_id", "active_organization_id", "ip_address", "user_agent", "expires_at").
		Values(id.String(), sess.Token, sess.UserID, sess.ActiveOrganizationID, sess.IPAddress, sess.UserAgent, sess.ExpiresAt).
		Suffix("RETURNING id, token, user_id, active_organization_id, ip_address, user_agent, expires_at, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Token, &created.UserID, &created.ActiveOrganizationID, &created.IPAddress, &created.UserAgent, &created.ExpiresAt, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetSessionByToken(ctx context.Context, token string) (*types.Session, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetSessionByToken")
	defer span.End()

	var sess types.Session
	err := s.db.Statement(ctx).
		Select("id", "token", "user_id", "active_organization_id", "ip_address", "user_agent", "expires_at", "created_at").
		From("sessions").
		Where(sq.Eq{"token": token}).
		QueryRowContext(ctx).
		Scan(&sess.ID, &sess.Token, &sess.UserID, &sess.ActiveOrganizationID, &sess.IPAddress, &sess.UserAgent, &sess.ExpiresAt, &sess.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &sess, nil
}

func (s *Storage) ListSessionsByUserID(ctx context.Context, userID string) ([]*types.Session, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListSessionsByUserID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("id", "token", "user_id", "active_organization_id", "ip_address", "user_agent", "expires_at", "created_at").
		From("sessions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*types.Session
	for rows.Next() {
		var sess types.Session
		if err := rows.Scan(&sess.ID, &sess.Token, &sess.UserID, &sess.ActiveOrganizationID, &sess.IPAddress, &sess.UserAgent, &sess.ExpiresAt, &sess.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sessions, nil
}

// UpdateSessionsActiveOrganization rewrites the active-organization snapshot
// on every session the user holds, so an explicit organization switch is
// visible to requests already carrying a session cookie.
func (s *Storage) UpdateSessionsActiveOrganization(ctx context.Context, userID string, organizationID *string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateSessionsActiveOrganization")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("sessions").
		Set("active_organization_id", organizationID).
		Where(sq.Eq{"user_id": userID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update session snapshots: %w", err)
	}

	return nil
}

func (s *Storage) DeleteSession(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteSession")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("sessions").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
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

func (s *Storage) DeleteSessionsByUserID(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteSessionsByUserID")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("sessions").
		Where(sq.Eq{"user_id": userID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	return nil
}

func (s *Storage) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteExpiredSessions")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("sessions").
		Where(sq.Lt{"expires_at": now}).
		ExecContext(ctx)

	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rows, nil
}

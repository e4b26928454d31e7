// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/mock/gomock"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/db"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

// fakeConn answers every statement with a fixed outcome. It sits where the
// stdlib-wrapped pgx pool normally does, so these tests exercise the same
// database/sql scan path production uses.
type fakeConn struct {
	err error
}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not implemented") }
func (c *fakeConn) Close() error                        { return nil }
func (c *fakeConn) Begin() (driver.Tx, error)           { return nil, errors.New("not implemented") }

func (c *fakeConn) QueryContext(context.Context, string, []driver.NamedValue) (driver.Rows, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &zeroRows{}, nil
}

func (c *fakeConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	if c.err != nil {
		return nil, c.err
	}
	return driver.RowsAffected(1), nil
}

type zeroRows struct{}

func (*zeroRows) Columns() []string         { return []string{} }
func (*zeroRows) Close() error              { return nil }
func (*zeroRows) Next([]driver.Value) error { return io.EOF }

type fakeConnector struct {
	conn *fakeConn
}

func (c fakeConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c fakeConnector) Driver() driver.Driver                        { return nil }

func newFakeStorage(t *testing.T, ctrl *gomock.Controller, conn *fakeConn) *Storage {
	t.Helper()

	sqlDB := sql.OpenDB(fakeConnector{conn: conn})
	t.Cleanup(func() { _ = sqlDB.Close() })

	client := db.NewMockDBClientInterface(ctrl)
	client.EXPECT().Statement(gomock.Any()).
		Return(sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(sqlDB)).
		AnyTimes()

	return NewStorage(client, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func TestStorage_NoRowsMapsToNotFound(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name string
		call func(s *Storage) error
	}{
		{
			name: "GetMember",
			call: func(s *Storage) error {
				_, err := s.GetMember(ctx, "org-1", "user-1")
				return err
			},
		},
		{
			name: "GetUserByID",
			call: func(s *Storage) error {
				_, err := s.GetUserByID(ctx, "user-1")
				return err
			},
		},
		{
			name: "GetUserByEmail",
			call: func(s *Storage) error {
				_, err := s.GetUserByEmail(ctx, "nobody@example.com")
				return err
			},
		},
		{
			name: "GetOrganizationByID",
			call: func(s *Storage) error {
				_, err := s.GetOrganizationByID(ctx, "org-1")
				return err
			},
		},
		{
			name: "GetOrganizationBySlug",
			call: func(s *Storage) error {
				_, err := s.GetOrganizationBySlug(ctx, "acme")
				return err
			},
		},
		{
			name: "GetSessionByToken",
			call: func(s *Storage) error {
				_, err := s.GetSessionByToken(ctx, "unknown-token")
				return err
			},
		},
		{
			name: "GetInvitationByID",
			call: func(s *Storage) error {
				_, err := s.GetInvitationByID(ctx, "inv-1")
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := newFakeStorage(t, ctrl, &fakeConn{})

			err := tc.call(s)

			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStorage_ConstraintViolationMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("unique violation on organization insert", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s := newFakeStorage(t, ctrl, &fakeConn{err: &pgconn.PgError{Code: "23505"}})

		_, err := s.CreateOrganization(ctx, &types.Organization{Name: "Acme", Slug: "acme"})

		if !errors.Is(err, ErrDuplicateKey) {
			t.Errorf("expected ErrDuplicateKey, got %v", err)
		}
	})

	t.Run("unique violation on member insert", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s := newFakeStorage(t, ctrl, &fakeConn{err: &pgconn.PgError{Code: "23505"}})

		_, err := s.AddMember(ctx, "org-1", "user-1", "member")

		if !errors.Is(err, ErrDuplicateKey) {
			t.Errorf("expected ErrDuplicateKey, got %v", err)
		}
	})

	t.Run("foreign key violation on member insert", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s := newFakeStorage(t, ctrl, &fakeConn{err: &pgconn.PgError{Code: "23503"}})

		_, err := s.AddMember(ctx, "org-1", "user-ghost", "member")

		if !errors.Is(err, ErrForeignKeyViolation) {
			t.Errorf("expected ErrForeignKeyViolation, got %v", err)
		}
	})

	t.Run("foreign key violation on session insert", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s := newFakeStorage(t, ctrl, &fakeConn{err: &pgconn.PgError{Code: "23503"}})

		_, err := s.CreateSession(ctx, &types.Session{Token: "tok", UserID: "user-ghost"})

		if !errors.Is(err, ErrForeignKeyViolation) {
			t.Errorf("expected ErrForeignKeyViolation, got %v", err)
		}
	})
}

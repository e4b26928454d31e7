// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

// Package user covers profile reads and writes plus the platform-admin user
// management surface.
package user

import (
	"context"
	"errors"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/authorization"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/db"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/errcode"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/storage"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage  StorageInterface
	sessions SessionRevokerInterface
	cache    CacheInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	sessions SessionRevokerInterface,
	cache CacheInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		sessions: sessions,
		cache:    cache,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (s *Service) GetUser(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "user.Service.GetUser")
	defer span.End()

	u, err := s.storage.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errcode.New(errcode.NotFound, "User not found.")
		}
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	return u, nil
}

func (s *Service) ListUsers(ctx context.Context, page uint64) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "user.Service.ListUsers")
	defer span.End()

	size := db.PageSize(0)
	users, err := s.storage.ListUsers(ctx, db.Offset(int64(page), size), size)
	if err != nil {
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	return users, nil
}

func (s *Service) UpdateProfile(ctx context.Context, u *types.User, paths []string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "user.Service.UpdateProfile")
	defer span.End()

	// Profile updates never touch the role column.
	for _, p := range paths {
		if p == "role" {
			return nil, errcode.New(errcode.Validation, "Role cannot be changed here.")
		}
	}

	if err := s.storage.UpdateUser(ctx, u, paths); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errcode.New(errcode.NotFound, "User not found.")
		}
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	updated, err := s.storage.GetUserByID(ctx, u.ID)
	if err != nil {
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	if err := s.cache.InvalidateUser(ctx, u.ID); err != nil {
		s.logger.Warnf("failed to invalidate user cache: %v", err)
	}

	return updated, nil
}

func (s *Service) SetRole(ctx context.Context, id, role string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "user.Service.SetRole")
	defer span.End()

	if role != string(authorization.PlatformAdmin) && role != string(authorization.PlatformUser) {
		return nil, errcode.New(errcode.Validation, "Unknown role.")
	}

	if err := s.storage.UpdateUser(ctx, &types.User{ID: id, Role: role}, []string{"role"}); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errcode.New(errcode.NotFound, "User not found.")
		}
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	updated, err := s.storage.GetUserByID(ctx, id)
	if err != nil {
		return nil, errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	if err := s.cache.InvalidateUser(ctx, id); err != nil {
		s.logger.Warnf("failed to invalidate user cache: %v", err)
	}

	return updated, nil
}

// DeleteUser removes the user row (memberships and sessions cascade) and
// revokes any live sessions so the deletion takes effect immediately.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "user.Service.DeleteUser")
	defer span.End()

	if err := s.sessions.RevokeUserSessions(ctx, id); err != nil {
		s.logger.Warnf("failed to revoke sessions for user %s: %v", id, err)
	}

	if err := s.storage.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errcode.New(errcode.NotFound, "User not found.")
		}
		return errcode.Wrap(errcode.Unexpected, "Unexpected error.", err)
	}

	if err := s.cache.InvalidateUser(ctx, id); err != nil {
		s.logger.Warnf("failed to invalidate user cache: %v", err)
	}

	return nil
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

// SecurityLogger emits audit-grade events on a dedicated "security" field so
// they can be filtered out of the regular application stream.
type SecurityLogger struct {
	l *zap.Logger
}

func NewSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l.With(zap.String("log_type", "security"))}
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", "system.startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", "system.shutdown"))
}

func (s *SecurityLogger) AuthnFailure(subject string) {
	s.l.Warn("authentication failure",
		zap.String("event", "authn.failure"),
		zap.String("subject", subject),
	)
}

func (s *SecurityLogger) AuthzFailure(subject, policy string) {
	s.l.Warn("authorization failure",
		zap.String("event", "authz.failure"),
		zap.String("subject", subject),
		zap.String("policy", policy),
	)
}

func (s *SecurityLogger) SessionCreated(userID string) {
	s.l.Info("session created",
		zap.String("event", "session.created"),
		zap.String("user_id", userID),
	)
}

func (s *SecurityLogger) SessionRevoked(userID string) {
	s.l.Info("session revoked",
		zap.String("event", "session.revoked"),
		zap.String("user_id", userID),
	)
}

// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"fmt"
	"net/http"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
)

// TransactionMiddleware wraps every mutating request in a lazily opened
// transaction: committed when the handler answers below 400, rolled back
// otherwise. GET and HEAD run without one.
func TransactionMiddleware(db DBClientInterface, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			err := db.WithTx(r.Context(), func(txCtx context.Context) error {
				sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
				next.ServeHTTP(sw, r.WithContext(txCtx))

				if sw.status >= 400 {
					return fmt.Errorf("request failed with status %d", sw.status)
				}
				return nil
			})
			if err != nil {
				// The handler already wrote the failure response; this is
				// only the rollback trigger.
				logger.Debugf("request transaction rolled back: %v", err)
			}
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}
